package f28004x

import (
	"os"
	"strings"
)

// IsCOMPort reports whether s looks like a Windows serial port name: "COM"
// in any letter case followed by at least one decimal digit. It does not
// check that the port exists.
func IsCOMPort(s string) bool {
	if len(s) < 4 || !strings.EqualFold(s[:3], "COM") {
		return false
	}
	for i := 3; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CheckReadable opens path for reading and closes it again. The open error is
// returned unchanged.
func CheckReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	f.Close()
	return nil
}
