package archetype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_DeclarationOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 5)

	assert.Equal(t, []StyleID{TechDark, PureClinical, OrganicWarm, VibrantPop, LuxuryGold}, IDs())

	seen := map[StyleID]bool{}
	for _, a := range all {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Keywords, "%s has no keywords", a.ID)
		assert.NotEmpty(t, a.DisplayName)
		assert.Equal(t, "theme-"+string(a.ID), a.ThemeTag)
	}
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Keywords[0] = "mutated"
	all[0].DisplayName = "mutated"

	fresh := MustLookup(TechDark)
	assert.Equal(t, "数码", fresh.Keywords[0])
	assert.Equal(t, "科技黑", fresh.DisplayName)
}

func TestLookup(t *testing.T) {
	a, err := Lookup(LuxuryGold)
	require.NoError(t, err)
	assert.Equal(t, "奢华金", a.DisplayName)

	_, err = Lookup("NotARealStyle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStyle))
	assert.Contains(t, err.Error(), "NotARealStyle")
}

func TestMustLookup_PanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() { MustLookup("Neon_Glow") })
	assert.NotPanics(t, func() { MustLookup(DefaultStyle) })
}

func TestIsValid(t *testing.T) {
	for _, id := range IDs() {
		assert.True(t, IsValid(string(id)))
	}
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("tech_dark"))
	assert.False(t, IsValid("NotARealStyle"))
}

func TestArchetype_Enhancement(t *testing.T) {
	a := MustLookup(PureClinical)
	assert.Equal(t,
		"pure white background, seamless and clean, soft diffused lighting, bright and even illumination, "+
			"clean, professional, clinical and precise, minimal shadows, scientific precision, medical-grade quality",
		a.Enhancement())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want StyleID
	}{
		{name: "empty text falls back to default", text: "", want: DefaultStyle},
		{name: "no keywords falls back to default", text: "a plain object on a table", want: DefaultStyle},
		{name: "stainless thermos has no keyword hit", text: "不锈钢保温杯 ", want: OrganicWarm},
		{name: "tech only", text: "旗舰手机 5G", want: TechDark},
		{name: "clinical only", text: "护肤精华 30ml", want: PureClinical},
		{name: "warm only", text: "手冲咖啡杯子", want: OrganicWarm},
		{name: "pop only", text: "儿童巧克力", want: VibrantPop},
		{name: "luxury only", text: "钻石首饰", want: LuxuryGold},
		{name: "casing does not matter", text: "NEW Phone 智能 HEADSET", want: TechDark},
		{name: "longer keyword adds to tech over luxury", text: "智能手表", want: TechDark},
		{name: "tie resolves to earlier archetype", text: "数码 珠宝", want: TechDark},
		{name: "tie between pop and luxury", text: "饼干礼品", want: VibrantPop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.want, got.StyleID)
			assert.Len(t, got.Scores, 5)
		})
	}
}

func TestClassify_ScoresCountKeywords(t *testing.T) {
	got := Classify("智能手表")
	assert.Equal(t, 2, got.Scores[TechDark])
	assert.Equal(t, 1, got.Scores[LuxuryGold])
	assert.Equal(t, 0, got.Scores[OrganicWarm])
}

func TestClassify_ZeroScoresAlwaysDefault(t *testing.T) {
	for _, text := range []string{"", " ", "abc", "不锈钢保温杯", "12345"} {
		got := Classify(text)
		for id, score := range got.Scores {
			assert.Zero(t, score, "%q scored on %s", text, id)
		}
		assert.Equal(t, DefaultStyle, got.StyleID)
	}
}

func TestClassifyProduct(t *testing.T) {
	assert.Equal(t, OrganicWarm, ClassifyProduct("不锈钢保温杯", ""))
	assert.Equal(t, LuxuryGold, ClassifyProduct("保温杯", "限量礼品"))
}
