package cardDB

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tta-cards/internal/models"
)

// local antigo das artes, removido ao resolver o caminho da imagem
const legacyImagePrefix = "tcg-cards/"

// fallbackNamespace é a semente dos ids derivados pra registros sem id
var fallbackNamespace = uuid.MustParse("5f0c2a3e-8d1b-4c57-9e1f-7a6b3d2c1e40")

func (cd *CardDB) normalize(pos int, rc models.RawCard) models.Card {
	rarity, _ := stringify(rc.Rarity)
	name, ok := stringify(rc.Name)
	if !ok {
		name = "Unknown"
	}

	imageFile, ok := stringify(rc.ImageFile)
	if !ok {
		imageFile, _ = stringify(rc.ImageFileAlt)
	}
	image, _ := stringify(rc.Image)

	card := models.Card{
		Name:      name,
		Rarity:    models.CardRarity(strings.ToLower(rarity)),
		ImageFile: imageFile,
		Image:     image,
	}

	id, ok := stringify(rc.ID)
	if !ok {
		id = cd.fallbackID(pos, card)
	}
	card.ID = id
	card.ImageURL = ResolveImageURL(card)
	return card
}

func (cd *CardDB) fallbackID(pos int, c models.Card) string {
	if !cd.stableIDs {
		return uuid.NewString()
	}
	key := fmt.Sprintf("%d\x00%s\x00%s\x00%s\x00%s", pos, c.Name, c.Rarity, c.ImageFile, c.Image)
	return uuid.NewSHA1(fallbackNamespace, []byte(key)).String()
}

// stringify converte um escalar decodificado em texto. Retorna false pra
// valor ausente ou null.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String(), true
		}
		return formatNumber(f), true
	case float64:
		return formatNumber(t), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}

// formatNumber imprime f como o navegador imprime um número: inteiros sem
// casa decimal, forma exponencial fora de [1e-6, 1e21).
func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == 0 {
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// 1.5e-07 -> 1.5e-7
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// ResolveImageURL retorna o caminho relativo da imagem: o image explícito
// quando tem, senão "<rarity>/<image_file>", sem o prefixo antigo e com
// percent-encoding mantendo as barras.
func ResolveImageURL(c models.Card) string {
	p := strings.TrimSpace(c.Image)
	if p == "" {
		p = string(c.Rarity) + "/" + c.ImageFile
	}
	p = strings.TrimPrefix(p, legacyImagePrefix)
	return encodeURI(p)
}

const upperhex = "0123456789ABCDEF"

// encodeURI escapa tudo menos os caracteres não reservados e reservados de URI
func encodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepInURI(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keepInURI(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'();/?:@&=+$,#", c) >= 0
}
