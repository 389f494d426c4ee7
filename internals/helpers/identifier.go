package helper

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// SequenceFromIdentifier mengambil nomor urut dari identifier terakhir.
// Jika prefix cocok, sisa setelah prefix yang diparse; selain itu digit di ujung.
// Identifier kosong atau tanpa digit → 0.
func SequenceFromIdentifier(last, prefix string) int {
	last = strings.TrimSpace(last)
	if last == "" {
		return 0
	}
	rest := last
	if prefix != "" && strings.HasPrefix(last, prefix) {
		rest = last[len(prefix):]
	}
	i := len(rest)
	for i > 0 && unicode.IsDigit(rune(rest[i-1])) {
		i--
	}
	digits := rest[i:]
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// HighestIdentifier memilih identifier berbentuk prefix+digit dengan nomor terbesar.
// Identifier manual yang ekornya bukan angka murni diabaikan.
func HighestIdentifier(prefix string, ids []string) string {
	best, bestSeq := "", -1
	for _, id := range ids {
		id = strings.TrimSpace(id)
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok || rest == "" || strings.TrimFunc(rest, unicode.IsDigit) != "" {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > bestSeq {
			best, bestSeq = id, n
		}
	}
	return best
}

func FormatIdentifier(prefix string, seq, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, seq)
}

// NextIdentifier menghasilkan kandidat berikutnya dan terus menaikkan nomor
// selama taken() melaporkan bentrok.
func NextIdentifier(prefix, last string, width int, taken func(string) (bool, error)) (string, error) {
	seq := SequenceFromIdentifier(last, prefix)
	for attempt := 0; attempt < 1000; attempt++ {
		seq++
		candidate := FormatIdentifier(prefix, seq, width)
		if taken == nil {
			return candidate, nil
		}
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("identifier sequence exhausted for prefix %q", prefix)
}
