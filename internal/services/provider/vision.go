// File: internal/services/provider/vision.go
package provider

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// imageDataURI loads the referenced image and inlines it as a
// data:image/{ext};base64,{payload} URI. A missing file is a RESOURCE
// error and aborts the call before any network traffic.
func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewResourceError("vision", fmt.Sprintf("image %q could not be read", path), err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "jpg" {
		ext = "jpeg" // MIME subtype for JPEG is "jpeg"
	}
	if ext == "" {
		ext = "jpeg"
	}

	payload := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:image/%s;base64,%s", ext, payload), nil
}
