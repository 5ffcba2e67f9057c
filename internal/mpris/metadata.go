package mpris

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// parseStatus maps an MPRIS PlaybackStatus string to a domain state
func parseStatus(status string) domain.PlaybackState {
	switch status {
	case "Playing":
		return domain.StatePlaying
	case "Paused":
		return domain.StatePaused
	case "Stopped":
		return domain.StateStopped
	case "":
		return domain.StateNone
	default:
		return domain.StateStopped
	}
}

// parseMetadata converts an MPRIS metadata map to the domain model
func parseMetadata(logger *zap.Logger, metadata map[string]dbus.Variant) domain.TrackMetadata {
	var meta domain.TrackMetadata

	if metadata == nil {
		return meta
	}

	// mpris:trackid is an object path by spec, but some players send a plain string
	if idVar, ok := metadata["mpris:trackid"]; ok {
		switch id := idVar.Value().(type) {
		case dbus.ObjectPath:
			meta.ID = string(id)
		case string:
			meta.ID = id
		}
	}

	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			meta.Title = title
		}
	}

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			meta.Subtitle = strings.Join(artists, ", ")
		case string:
			meta.Subtitle = artists
		default:
			// Some non-compliant players may use unexpected types
			logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	if albumVar, ok := metadata["xesam:album"]; ok {
		if album, ok := albumVar.Value().(string); ok {
			meta.Album = album
		}
	}

	if artVar, ok := metadata["mpris:artUrl"]; ok {
		if artURL, ok := artVar.Value().(string); ok && artURL != "" {
			if strings.HasPrefix(artURL, "data:") {
				bitmap, err := decodeDataURL(artURL)
				if err != nil {
					logger.Debug("Unusable data artUrl", zap.String("title", meta.Title), zap.Error(err))
				} else {
					meta.ArtBitmap = bitmap
				}
			} else {
				meta.ArtURL = artURL
			}
		}
	}

	return meta
}

// decodeDataURL extracts the payload of a data: URL carrying inline artwork
func decodeDataURL(raw string) ([]byte, error) {
	header, payload, found := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !found {
		return nil, fmt.Errorf("malformed data url")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 payload: %w", err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid escaped payload: %w", err)
	}
	return []byte(data), nil
}
