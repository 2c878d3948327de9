package panel

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
)

// MaxIconSize is the largest accepted icon file
const MaxIconSize = 5 * 1024 * 1024

// Icon errors
var (
	ErrIconTooLarge = errors.New("image size should be less than 5MB")
	ErrNotImage     = errors.New("please select a valid image file")
)

// SocialHandles manages social media accounts
type SocialHandles struct {
	*Panel[models.SocialHandle, *models.SocialHandle]
}

// NewSocialHandles creates the social handles panel. Submit refuses a name
// that another loaded handle already uses, ignoring case, without calling
// the backend.
func NewSocialHandles(api *client.API, log *slog.Logger) *SocialHandles {
	return &SocialHandles{
		Panel: New[models.SocialHandle](models.PathSocialHandles, api.SocialHandles, log, Options[models.SocialHandle]{
			Fallback: models.SampleSocialHandles,
			Validate: rejectDuplicateName,
		}),
	}
}

func rejectDuplicateName(form models.SocialHandle, editingID string, items []models.SocialHandle) error {
	for _, h := range items {
		if strings.EqualFold(h.Name, form.Name) && h.ID != editingID {
			return ErrDuplicateName
		}
	}
	return nil
}

// Summary returns the social handle counters
func (s *SocialHandles) Summary() summary.Social {
	return summary.ForSocial(s.Items())
}

// IconDataURI encodes an icon file as a base64 data URI. The media type comes
// from the file extension, or from the content when the extension is unknown.
func IconDataURI(filename string, data []byte) (string, error) {
	if len(data) > MaxIconSize {
		return "", ErrIconTooLarge
	}
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", ErrNotImage
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data)), nil
}
