package drive

import (
	"time"

	drivev3 "google.golang.org/api/drive/v3"
)

// unknownOwner is shown for an owner with neither display name nor e-mail.
const unknownOwner = "Unknown"

// Report is a Drive file that looks like a Looker Studio report. Optional
// fields are zero when Drive did not return them; Size is zero for native
// Google files, which have no byte size.
type Report struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType"`
	ModifiedTime time.Time `json:"modifiedTime"`
	Size         int64     `json:"size,omitempty"`
	Owners       []string  `json:"owners,omitempty"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
}

// AccountInfo describes the authenticated user and their storage quota.
// Limit is zero for unlimited plans.
type AccountInfo struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Usage       int64  `json:"usage"`
	Limit       int64  `json:"limit,omitempty"`
}

// toReport maps a Drive file onto a Report. An unparsable modifiedTime is
// left zero rather than failing the listing.
func toReport(f *drivev3.File) Report {
	r := Report{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
	}

	if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
		r.ModifiedTime = t
	}

	for _, o := range f.Owners {
		r.Owners = append(r.Owners, ownerName(o))
	}

	return r
}

func ownerName(u *drivev3.User) string {
	switch {
	case u == nil:
		return unknownOwner
	case u.DisplayName != "":
		return u.DisplayName
	case u.EmailAddress != "":
		return u.EmailAddress
	default:
		return unknownOwner
	}
}
