package driver_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Le36/ezcompiler/pkg/driver"
)

func TestAssembleInvalidData(t *testing.T) {
	// Deliberately malformed assembly: gcc must fail, and the returned error
	// must carry its diagnostic output rather than just an exit status.
	outputPath := filepath.Join(t.TempDir(), "a.out")
	err := driver.Assemble("this is not valid assembly\n", outputPath)
	if err == nil {
		t.Fail()
		return
	}

	var asmErr *driver.AssembleError
	if !errors.As(err, &asmErr) {
		t.Fail()
		return
	}
	if asmErr.Output == "" {
		t.Fail()
	}
	if _, statErr := os.Stat(outputPath); statErr == nil {
		t.Fail() // no executable should have been produced
	}
}
