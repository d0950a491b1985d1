package launcher

import (
	"os"
	"path/filepath"
)

// EntryDocument is served for the root path.
const EntryDocument = "index.html"

// RequiredFiles must exist under the application root before the server starts.
var RequiredFiles = []string{EntryDocument, "styles.css", "script.js"}

// CheckRequired returns the files that are missing under root, in order.
func CheckRequired(root string, files []string) []string {
	var missing []string
	for _, name := range files {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
		}
	}
	return missing
}
