package drive

import (
	"fmt"
	"regexp"
)

var (
	folderIDPattern = regexp.MustCompile(`/folders/([A-Za-z0-9_-]+)`)
	fileURLPattern  = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)
	idParamPattern  = regexp.MustCompile(`[?&]id=([A-Za-z0-9_-]+)`)
	hotlinkPattern  = regexp.MustCompile(`^https://lh3\.googleusercontent\.com/d/`)
)

// ExtractFolderID pulls the folder ID out of a Drive folder share URL.
func ExtractFolderID(folderURL string) (string, error) {
	m := folderIDPattern.FindStringSubmatch(folderURL)
	if m == nil {
		return "", fmt.Errorf("no /folders/{id} segment in URL: %s", folderURL)
	}
	return m[1], nil
}

// HotlinkURL builds the long-lived, directly embeddable image URL for a
// Drive file ID.
func HotlinkURL(fileID string) string {
	return fmt.Sprintf("https://lh3.googleusercontent.com/d/%s=w800", fileID)
}

// ConvertShareURL rewrites a Drive "file/d/{id}" or "uc?id={id}" style share
// URL into the hotlink form. Already-converted hotlinks and URLs that do not
// look like Drive links pass through unchanged, so the conversion is
// idempotent.
func ConvertShareURL(rawURL string) string {
	if hotlinkPattern.MatchString(rawURL) {
		return rawURL
	}
	if m := fileURLPattern.FindStringSubmatch(rawURL); m != nil {
		return HotlinkURL(m[1])
	}
	if m := idParamPattern.FindStringSubmatch(rawURL); m != nil {
		return HotlinkURL(m[1])
	}
	return rawURL
}
