package promptsynth

import (
	"strings"
	"testing"

	"product-image-workers/internal/style/archetype"

	"github.com/stretchr/testify/assert"
)

func TestBuildClassificationInstruction_EnumeratesCatalog(t *testing.T) {
	p := BuildClassificationInstruction("不锈钢保温杯", "限时特惠")

	for _, a := range archetype.All() {
		assert.Contains(t, p.InstructionText, string(a.ID)+": "+a.DisplayName)
		assert.Contains(t, p.InstructionText, a.Summary)
	}
	for _, field := range OutputFields {
		assert.Contains(t, p.InstructionText, `"`+field+`"`)
	}
	assert.Contains(t, p.InstructionText, "**当前产品**: 不锈钢保温杯")
	assert.Contains(t, p.InstructionText, "**营销文案**: 限时特惠")
	assert.Contains(t, p.InstructionText, "核心材质约束")
	assert.Equal(t, ClassificationUserText, p.UserText)
}

func TestBuildClassificationInstruction_EmptyCopyPlaceholder(t *testing.T) {
	for _, copyText := range []string{"", "   "} {
		p := BuildClassificationInstruction("咖啡杯", copyText)
		assert.Contains(t, p.InstructionText, "**营销文案**: 无")
	}
}

func TestDetectBackgroundPreference(t *testing.T) {
	tests := []struct {
		hint string
		want BackgroundPreference
	}{
		{"", PreferenceNone},
		{"make it pop", PreferenceNone},
		{"WHITE marble please", PreferenceWhite},
		{"纯白背景", PreferenceWhite},
		{"浅色台面", PreferenceWhite},
		{"warm light", PreferenceWarm},
		{"原木风格", PreferenceWarm},
		{"Dark mood", PreferenceDark},
		{"深色大理石", PreferenceDark},
		{"dark but white countertop", PreferenceWhite},
		{"warm wood with dark wall", PreferenceWarm},
		{"白色和木纹", PreferenceWhite},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBackgroundPreference(tt.hint))
		})
	}
}

func TestKitchenFragment(t *testing.T) {
	assert.Contains(t, KitchenFragment(PreferenceWhite), "bright white kitchen background")
	assert.Contains(t, KitchenFragment(PreferenceWarm), "light oak wooden countertop")
	assert.Contains(t, KitchenFragment(PreferenceDark), "black marble countertop")
	assert.Equal(t, KitchenFragment(PreferenceDark), KitchenFragment(PreferenceNone))
}

func TestMergeVisionSignals(t *testing.T) {
	t.Run("without enrichment", func(t *testing.T) {
		got := MergeVisionSignals(" stainless thermos ", " white background ", "  ")
		assert.Equal(t, "stainless thermos | white background | "+KitchenFragment(PreferenceWhite), got)
	})

	t.Run("with enrichment", func(t *testing.T) {
		got := MergeVisionSignals("thermos", "", "morning light on the counter")
		want := "thermos |" + SignalSeparator + KitchenFragment(PreferenceNone) + SignalSeparator + "morning light on the counter"
		assert.Equal(t, want, got)
	})
}

func TestAppendNoTextSuffix(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"plain", "a thermos on marble", "a thermos on marble, " + NoTextSuffix},
		{"trailing comma", "a thermos on marble, ", "a thermos on marble, " + NoTextSuffix},
		{"already suffixed", "a thermos, " + NoTextSuffix, "a thermos, " + NoTextSuffix},
		{"suffixed twice", "a thermos, " + NoTextSuffix + ", " + NoTextSuffix, "a thermos, " + NoTextSuffix},
		{"suffix mid prompt", NoTextSuffix + ", a thermos", "a thermos, " + NoTextSuffix},
		{"empty", "", NoTextSuffix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendNoTextSuffix(tt.prompt)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, strings.Count(got, NoTextSuffix))
			assert.True(t, strings.HasSuffix(got, NoTextSuffix))
		})
	}
}

func TestAppendNoTextSuffix_Idempotent(t *testing.T) {
	once := AppendNoTextSuffix("red kettle")
	assert.Equal(t, once, AppendNoTextSuffix(once))
}

func TestApplyVisionSuffix(t *testing.T) {
	modelPrompt := AppendNoTextSuffix("thermos on black marble")
	got := ApplyVisionSuffix(modelPrompt)

	assert.Equal(t, "thermos on black marble, "+MatchReferenceClause+", "+NoTextSuffix, got)
	assert.Equal(t, 1, strings.Count(got, NoTextSuffix))
	assert.Equal(t, 1, strings.Count(got, MatchReferenceClause))
	assert.Equal(t, got, ApplyVisionSuffix(got))
}

func TestLayoutInstruction(t *testing.T) {
	got := LayoutInstruction("", "")
	assert.Contains(t, got, `"title": "Hot Sale"`)
	assert.NotContains(t, got, "{copy}")

	got = LayoutInstruction("", "限时五折")
	assert.Contains(t, got, `"title": "限时五折"`)

	got = LayoutInstruction("标题：{copy}，再次：{copy}", "新品")
	assert.Equal(t, "标题：新品，再次：新品", got)
}

func TestBackgroundDesignRequest(t *testing.T) {
	assert.Equal(t, "Product: unknown", BackgroundDesignRequest("  "))
	assert.Equal(t, "Product: steel pan", BackgroundDesignRequest("steel pan"))
}
