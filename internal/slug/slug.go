package slug

import (
	petname "github.com/dustinkirkland/golang-petname"
)

// Generate returns a three word, hyphenated meeting name such as "gladly-calm-otter".
func Generate() string {
	return petname.Generate(3, "-")
}
