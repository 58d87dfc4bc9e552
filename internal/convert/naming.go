package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// collisionSuffix is appended to the stem when the plain target name is taken.
const collisionSuffix = "_converted"

// OutputPath returns a path next to src with extension ext that does not
// exist yet. The plain name is tried first, then "<stem>_converted<ext>",
// then "<stem>_converted_1<ext>", and so on.
func OutputPath(src, ext string) string {
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	candidate := filepath.Join(dir, stem+ext)
	if candidate != src && !exists(candidate) {
		return candidate
	}

	for i := 0; ; i++ {
		name := stem + collisionSuffix
		if i > 0 {
			name += fmt.Sprintf("_%d", i)
		}
		candidate = filepath.Join(dir, name+ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// exists treats any stat result other than "not exist" as taken.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return !os.IsNotExist(err)
}
