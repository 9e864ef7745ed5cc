package discord

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/extract"
)

// maxAttachmentBytes bounds what we are willing to pull into a prompt.
const maxAttachmentBytes = 8 << 20

var attachmentClient = &http.Client{Timeout: 30 * time.Second}

// extractAttachment downloads an uploaded file and renders it as plain
// text by its filename extension.
func (c Client) extractAttachment(att *discordgo.MessageAttachment) (string, error) {
	if att.Size > maxAttachmentBytes {
		return "", fmt.Errorf("attachment %s is too large (%d bytes)", att.Filename, att.Size)
	}

	resp, err := attachmentClient.Get(att.URL)
	if err != nil {
		return "", fmt.Errorf("downloading attachment: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("attachment download returned status %d", resp.StatusCode)
	}

	blob, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading attachment: %w", err)
	}
	if len(blob) > maxAttachmentBytes {
		return "", fmt.Errorf("attachment %s exceeds the size limit", att.Filename)
	}

	c.logger.Debug("extracting attachment", "filename", att.Filename, "bytes", len(blob))
	return extract.Extract(blob, filepath.Ext(att.Filename))
}
