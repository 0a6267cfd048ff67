// Package markdown turns markdown documents with YAML frontmatter into section
// content: the frontmatter picks the section type and translation fields, the
// body is rendered to HTML with goldmark.
package markdown
