// file: internal/aladin/language.go
// version: 1.0.0
// guid: 2b4d6f8a-0c1e-4a3b-9d5c-7e9f1a3b5d7f

package aladin

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// langCodes maps the language names the site prints to ISO-639-2 codes.
var langCodes = map[string]string{
	"english":    "eng",
	"englisch":   "eng",
	"eng":        "eng",
	"chinese":    "zho",
	"chinois":    "zho",
	"chi":        "zho",
	"french":     "fra",
	"francais":   "fra",
	"fra":        "fra",
	"italian":    "ita",
	"italiano":   "ita",
	"ita":        "ita",
	"dutch":      "dut",
	"dut":        "dut",
	"german":     "deu",
	"deutsch":    "deu",
	"ger":        "deu",
	"spanish":    "spa",
	"español":    "spa",
	"espaniol":   "spa",
	"spa":        "spa",
	"japanese":   "jpn",
	"日本語":        "jpn",
	"jap":        "jpn",
	"portuguese": "por",
	"portugues":  "por",
	"por":        "por",
	"korean":     "kor",
	"한국어":        "kor",
	"kor":        "kor",
}

var languagePattern = regexp.MustCompile(`언어\s?:\s?(\S+)`)

// parseLanguage reads the 언어 entry from the standard-data block. The site
// omits it for domestic titles, which are Korean.
func parseLanguage(doc *html.Node) string {
	raw := "korean"
	if m := languagePattern.FindStringSubmatch(goodsInfo(doc)); m != nil {
		raw = m[1]
	}
	if code, ok := langCodes[strings.ToLower(raw)]; ok {
		return code
	}
	return ""
}
