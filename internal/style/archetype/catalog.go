// Package archetype holds the fixed catalog of visual styles and the keyword
// classifier that maps product text onto it.
package archetype

import (
	"errors"
	"fmt"
	"strings"
)

// StyleID identifies one of the five visual archetypes.
type StyleID string

const (
	TechDark     StyleID = "Tech_Dark"
	PureClinical StyleID = "Pure_Clinical"
	OrganicWarm  StyleID = "Organic_Warm"
	VibrantPop   StyleID = "Vibrant_Pop"
	LuxuryGold   StyleID = "Luxury_Gold"

	// DefaultStyle is returned whenever nothing scores.
	DefaultStyle = OrganicWarm
)

// ErrUnknownStyle is returned by Lookup for ids outside the catalog.
var ErrUnknownStyle = errors.New("unknown style id")

// Fragments are the English prompt pieces appended to a generation prompt
// for an archetype.
type Fragments struct {
	Background string `json:"background"`
	Lighting   string `json:"lighting"`
	Mood       string `json:"mood"`
	Extras     string `json:"extras"`
}

// Archetype is an immutable catalog entry.
type Archetype struct {
	ID          StyleID   `json:"id"`
	DisplayName string    `json:"displayName"`
	Domain      string    `json:"domain"`
	Summary     string    `json:"summary"`
	Keywords    []string  `json:"keywords"`
	Fragments   Fragments `json:"fragments"`
	ThemeTag    string    `json:"themeTag"`
}

// Enhancement joins the prompt fragments into a single comma separated clause.
func (a Archetype) Enhancement() string {
	return strings.Join([]string{
		a.Fragments.Background,
		a.Fragments.Lighting,
		a.Fragments.Mood,
		a.Fragments.Extras,
	}, ", ")
}

// catalog is in declaration order; classification tie-breaks depend on it.
var catalog = []Archetype{
	{
		ID:          TechDark,
		DisplayName: "科技黑",
		Domain:      "数码产品、智能设备",
		Summary:     "深色背景、冷色调、未来感",
		Keywords:    []string{"数码", "智能", "电子", "科技", "手机", "电脑", "耳机", "音响", "智能手表", "平板"},
		Fragments: Fragments{
			Background: "dark gradient background from deep blue to black",
			Lighting:   "dramatic side lighting with blue accent lights",
			Mood:       "futuristic, high-tech, sleek and modern",
			Extras:     "subtle grid pattern, holographic effects, sci-fi atmosphere",
		},
		ThemeTag: "theme-Tech_Dark",
	},
	{
		ID:          PureClinical,
		DisplayName: "科研白",
		Domain:      "护肤品、医疗用品、保健品",
		Summary:     "纯白背景、简洁、专业",
		Keywords:    []string{"护肤", "化妆品", "精华", "面霜", "医疗", "保健品", "药品", "美容", "面膜", "洗面奶"},
		Fragments: Fragments{
			Background: "pure white background, seamless and clean",
			Lighting:   "soft diffused lighting, bright and even illumination",
			Mood:       "clean, professional, clinical and precise",
			Extras:     "minimal shadows, scientific precision, medical-grade quality",
		},
		ThemeTag: "theme-Pure_Clinical",
	},
	{
		ID:          OrganicWarm,
		DisplayName: "自然暖",
		Domain:      "食品、厨具、家居用品",
		Summary:     "暖色调、自然光、温馨",
		Keywords:    []string{"食品", "厨具", "家居", "餐具", "锅", "碗", "杯子", "茶具", "咖啡", "茶叶", "调料", "刀具"},
		Fragments: Fragments{
			Background: "natural wood texture or marble surface, warm tones",
			Lighting:   "warm natural sunlight, soft shadows",
			Mood:       "cozy, organic, homely and inviting",
			Extras:     "natural elements like plants or fresh ingredients nearby",
		},
		ThemeTag: "theme-Organic_Warm",
	},
	{
		ID:          VibrantPop,
		DisplayName: "多巴胺",
		Domain:      "零食、潮流产品、儿童用品",
		Summary:     "高饱和度、活力、年轻",
		Keywords:    []string{"零食", "薯片", "糖果", "饮料", "潮流", "儿童", "玩具", "文具", "饼干", "巧克力"},
		Fragments: Fragments{
			Background: "vibrant gradient background with bold saturated colors",
			Lighting:   "bright colorful lighting, high contrast and dynamic",
			Mood:       "energetic, playful, youthful and fun",
			Extras:     "geometric shapes, dynamic composition, pop art style",
		},
		ThemeTag: "theme-Vibrant_Pop",
	},
	{
		ID:          LuxuryGold,
		DisplayName: "奢华金",
		Domain:      "高端产品、礼品、珠宝",
		Summary:     "金色元素、精致、高级",
		Keywords:    []string{"奢侈", "高端", "礼品", "珠宝", "手表", "首饰", "钻石", "黄金", "限量", "收藏"},
		Fragments: Fragments{
			Background: "elegant dark background with subtle gold accents",
			Lighting:   "warm golden hour lighting, soft glow and highlights",
			Mood:       "luxurious, premium, sophisticated and refined",
			Extras:     "subtle bokeh effect, refined details, high-end presentation",
		},
		ThemeTag: "theme-Luxury_Gold",
	},
}

var byID = func() map[StyleID]int {
	idx := make(map[StyleID]int, len(catalog))
	for i, a := range catalog {
		if _, dup := idx[a.ID]; dup {
			panic(fmt.Sprintf("archetype: duplicate id %s", a.ID))
		}
		if len(a.Keywords) == 0 {
			panic(fmt.Sprintf("archetype: %s has no keywords", a.ID))
		}
		idx[a.ID] = i
	}
	return idx
}()

// All returns the catalog in declaration order. The slice is a copy.
func All() []Archetype {
	out := make([]Archetype, len(catalog))
	for i, a := range catalog {
		a.Keywords = append([]string(nil), a.Keywords...)
		out[i] = a
	}
	return out
}

// IDs returns the archetype ids in declaration order.
func IDs() []StyleID {
	ids := make([]StyleID, len(catalog))
	for i, a := range catalog {
		ids[i] = a.ID
	}
	return ids
}

// Lookup returns the archetype for id.
func Lookup(id StyleID) (Archetype, error) {
	i, ok := byID[id]
	if !ok {
		return Archetype{}, fmt.Errorf("%w: %q", ErrUnknownStyle, string(id))
	}
	a := catalog[i]
	a.Keywords = append([]string(nil), a.Keywords...)
	return a, nil
}

// MustLookup is Lookup for ids that have already been validated. An unknown
// id here means the catalog and a validator disagree, so it panics.
func MustLookup(id StyleID) Archetype {
	a, err := Lookup(id)
	if err != nil {
		panic(fmt.Sprintf("archetype: catalog mismatch: %v", err))
	}
	return a
}

// IsValid reports whether id names a catalog entry.
func IsValid(id string) bool {
	_, ok := byID[StyleID(id)]
	return ok
}
