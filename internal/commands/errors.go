package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

type stage int

const (
	stageValidate stage = iota
	stageExecute
)

// categorize tags a page command error once. Context errors win over the
// stage so cancelled saves and timed-out brandkit runs are reported as such.
func categorize(s stage, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "page command cancelled").
			WithTextCode("PAGE_COMMAND_CANCELED")
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "page command timed out").
			WithTextCode("PAGE_COMMAND_TIMEOUT")
	case s == stageValidate:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "page command rejected").
			WithTextCode("PAGE_COMMAND_INVALID")
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "page command failed").
			WithTextCode("PAGE_COMMAND_FAILED")
	}
}
