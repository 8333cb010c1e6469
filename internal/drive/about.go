package drive

import "context"

// About returns the authenticated user and their storage quota.
func (c *Client) About(ctx context.Context) (AccountInfo, error) {
	about, err := c.svc.About.Get().Fields("user,storageQuota").Context(ctx).Do()
	if err != nil {
		return AccountInfo{}, classify("get account", err)
	}

	var info AccountInfo
	if about.User != nil {
		info.DisplayName = about.User.DisplayName
		info.Email = about.User.EmailAddress
	}

	if about.StorageQuota != nil {
		info.Usage = about.StorageQuota.Usage
		info.Limit = about.StorageQuota.Limit
	}

	return info, nil
}
