package gateway

import (
	"context"
	"fmt"
)

// UploadRecording stores an encoded WAV blob in the recordings bucket and
// returns its public URL. Object names carry a uuid, so collisions are not
// retried.
func (c *Client) UploadRecording(ctx context.Context, objectName string, wavData []byte) (string, error) {
	if len(wavData) == 0 {
		return "", fmt.Errorf("upload recording: empty payload")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "audio/wav").
		SetBody(wavData).
		Post(fmt.Sprintf("%s/%s/%s", storagePrefix, c.bucket, objectName))
	if err != nil {
		return "", fmt.Errorf("upload recording: %w", err)
	}
	if resp.IsError() {
		return "", apiError(resp)
	}

	return fmt.Sprintf("%s%s/public/%s/%s", c.base, storagePrefix, c.bucket, objectName), nil
}
