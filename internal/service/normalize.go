package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Fence markers are removed wherever they occur, not only as a matched pair
// around the payload. A stray ``` in the middle of the text is stripped too.
var (
	jsonFencePattern   = regexp.MustCompile("```json\\s*")
	taggedFencePattern = regexp.MustCompile("```\\w*\\s*")
	bareFencePattern   = regexp.MustCompile("```\\s*")
)

var errNotJSON = errors.New("response is not valid JSON")

// cleanJSONResponse strips fence markers from output that should contain JSON.
func cleanJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = jsonFencePattern.ReplaceAllString(s, "")
	s = bareFencePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// cleanCodeResponse strips fence markers, including any language tag, from output
// that should contain source code.
func cleanCodeResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = taggedFencePattern.ReplaceAllString(s, "")
	s = bareFencePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// parseJSONResponse cleans raw and returns it as a JSON document.
func parseJSONResponse(raw string) (json.RawMessage, error) {
	cleaned := cleanJSONResponse(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, errNotJSON
	}
	return json.RawMessage(cleaned), nil
}

// parseIssueList parses an analyze response. A valid document that is not an
// array (object, scalar, null) yields an empty list instead of an error.
func parseIssueList(raw string) ([]json.RawMessage, error) {
	doc, err := parseJSONResponse(raw)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(doc, &items); err != nil || items == nil {
		return []json.RawMessage{}, nil
	}
	return items, nil
}
