package launch

import (
	"debug/pe"
	"fmt"
	"os"
)

// classifyExecutable reports whether the program at path is a windowed
// executable, by reading the subsystem field of its PE optional header.
// Targets that are not PE images (scripts, ELF binaries) are console
// programs. path must be unquoted.
func classifyExecutable(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open target: %w", err)
	}
	defer f.Close()

	img, err := pe.NewFile(f)
	if err != nil {
		return false, nil
	}

	switch hdr := img.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		return hdr.Subsystem == pe.IMAGE_SUBSYSTEM_WINDOWS_GUI, nil
	case *pe.OptionalHeader64:
		return hdr.Subsystem == pe.IMAGE_SUBSYSTEM_WINDOWS_GUI, nil
	}
	return false, nil
}
