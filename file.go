package picores

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// writeFile calls fn with a temporary file in the same directory as file
// and renames it into place if fn succeeds. On failure nothing is left at
// file, including any output from a previous pass.
func writeFile(file string, fn func(*os.File) error) (err error) {
	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			os.Remove(file)
		}
	}()

	if err = fn(f); err != nil {
		return err
	}

	if err = f.Chmod(0644); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}
