package model

import "regexp"

const (
	// MaxPlayerNameLength is the longest allowed display name
	MaxPlayerNameLength = 20
	// RoomIDLength is the length of room codes
	RoomIDLength = 6
	// RoomIDAlphabet is the characters used in room codes
	RoomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// playerNamePattern allows latin alphanumerics, Hiragana, Katakana,
// the common Kanji range and whitespace.
var playerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\s]+$`)

var roomIDPattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// ValidatePlayerName checks a display name against the allow-list.
// Length is counted in runes so multi-byte names get the full 20 characters.
func ValidatePlayerName(name string) error {
	if name == "" || len([]rune(name)) > MaxPlayerNameLength {
		return ErrInvalidPlayerName
	}
	if !playerNamePattern.MatchString(name) {
		return ErrInvalidPlayerName
	}
	return nil
}

// ValidateRoomID checks a room code is 6 uppercase alphanumeric characters
func ValidateRoomID(id RoomID) error {
	if !roomIDPattern.MatchString(string(id)) {
		return ErrInvalidRoomID
	}
	return nil
}
