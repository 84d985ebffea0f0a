package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption is returned for option names the menu does not define.
	ErrUnknownOption = errors.New("unknown menu option")
	// ErrOptionHidden is returned when selecting an option the menu currently hides.
	ErrOptionHidden = errors.New("menu option is not visible")
	// ErrOptionDisabled is returned when selecting a greyed-out option.
	ErrOptionDisabled = errors.New("menu option is disabled")
	// ErrRunDisabled is returned when run is selected without a concrete model.
	ErrRunDisabled = errors.New("run is disabled: no model selected")
)

func unknownOption(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOption, name)
}
