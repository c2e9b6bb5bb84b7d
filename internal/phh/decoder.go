package phh

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadFile decodes a PHH file holding one hand, a session of [hand_N]
// sections, or hands concatenated one after another.
func LoadFile(path string) ([]HandHistory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hands, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hands, nil
}

// Decode reads every hand from r. Hands without an id are named after their
// session section, or numbered by position.
func Decode(r io.Reader) ([]HandHistory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw := string(data)

	var session map[string]HandHistory
	if _, err := toml.Decode(raw, &session); err == nil && len(session) > 0 {
		keys := slices.SortedFunc(maps.Keys(session), compareSections)
		hands := make([]HandHistory, len(keys))
		for i, key := range keys {
			hands[i] = session[key]
		}
		assignIDs(hands, keys)
		return hands, nil
	}

	var hands []HandHistory
	for i, chunk := range splitHands(raw) {
		var h HandHistory
		if _, err := toml.Decode(chunk, &h); err != nil {
			return nil, fmt.Errorf("decode chunk %d: %w", i+1, err)
		}
		hands = append(hands, h)
	}
	assignIDs(hands, nil)
	return hands, nil
}

// compareSections orders hand_N sections numerically and anything else by
// name.
func compareSections(a, b string) int {
	an, errA := strconv.Atoi(strings.TrimPrefix(a, "hand_"))
	bn, errB := strconv.Atoi(strings.TrimPrefix(b, "hand_"))
	if errA == nil && errB == nil {
		return cmp.Compare(an, bn)
	}
	return strings.Compare(a, b)
}

func assignIDs(hands []HandHistory, sections []string) {
	for i := range hands {
		h := &hands[i]
		switch {
		case h.HandID != "":
		case h.LegacyHandID != "":
			h.HandID = h.LegacyHandID
		case i < len(sections):
			h.HandID = sections[i]
		default:
			h.HandID = fmt.Sprintf("hand-%d", i+1)
		}
	}
}

// splitHands cuts a file of concatenated hands apart. A new hand starts at a
// "# ─" separator or at a variant key once the current hand has content.
// Comments above a variant line stay with the hand they precede.
func splitHands(raw string) []string {
	var out []string
	var cur strings.Builder
	content := false
	flush := func() {
		if content {
			out = append(out, strings.TrimSpace(cur.String()))
		}
		cur.Reset()
		content = false
	}
	for line := range strings.Lines(raw) {
		trim := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trim, "# ─"):
			flush()
			continue
		case content && isKey(trim, "variant"):
			flush()
		}
		if trim != "" && !strings.HasPrefix(trim, "#") {
			content = true
		}
		cur.WriteString(line)
	}
	flush()
	return out
}

func isKey(line, key string) bool {
	rest, ok := strings.CutPrefix(line, key)
	return ok && strings.HasPrefix(strings.TrimSpace(rest), "=")
}
