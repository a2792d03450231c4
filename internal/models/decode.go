package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/mitchellh/mapstructure"
	"gorm.io/datatypes"
)

// DecodeResume builds a Resume from loosely typed JSON. Values are coerced where
// possible ("82.5" becomes 82.5, a lone string becomes a one-element list); a field
// that cannot be coerced is left empty and its problem is returned in ignored.
// Identifier and server timestamps in the payload are never honoured.
func DecodeResume(payload map[string]any) (resume *Resume, ignored []string, err error) {
	resume = &Resume{}

	ignored, err = decodeLoose(payload, resume)
	if err != nil {
		return nil, nil, err
	}

	// Uncoercible list elements decode to "" placeholders.
	resume.Skills = compactStrings(resume.Skills)
	resume.KeyStrengths = compactStrings(resume.KeyStrengths)
	resume.Highlights = compactStrings(resume.Highlights)
	resume.RecommendedJobRoles = compactStrings(resume.RecommendedJobRoles)

	if raw, ok := payload["education"]; ok && raw != nil {
		b, err := json.Marshal(raw)
		if err != nil {
			ignored = append(ignored, fmt.Sprintf("'education' %v", err))
		} else {
			resume.Education = datatypes.JSON(b)
		}
	}

	if raw, ok := payload["uploaded_at"]; ok && raw != nil {
		if ts, ok := parseTimestamp(raw); ok {
			resume.UploadedAt = &ts
		} else {
			ignored = append(ignored, fmt.Sprintf("'uploaded_at' unparseable value %v", raw))
		}
	}

	return resume, ignored, nil
}

// DecodeATSResult coerces a parsed score response.
func DecodeATSResult(payload map[string]any) (*ATSResult, []string, error) {
	var result ATSResult
	ignored, err := decodeLoose(payload, &result)
	if err != nil {
		return nil, nil, err
	}
	return &result, ignored, nil
}

func decodeLoose(payload map[string]any, target any) ([]string, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}

	if err := decoder.Decode(payload); err != nil {
		var decodeErr *mapstructure.Error
		if errors.As(err, &decodeErr) {
			return decodeErr.Errors, nil
		}
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	return nil, nil
}

func compactStrings(list pq.StringArray) pq.StringArray {
	if list == nil {
		return nil
	}
	out := make(pq.StringArray, 0, len(list))
	for _, item := range list {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseTimestamp(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts, true
			}
		}
	case float64:
		// Milliseconds since the epoch, as produced by Date.now().
		return time.UnixMilli(int64(v)).UTC(), true
	case time.Time:
		return v, true
	}
	return time.Time{}, false
}
