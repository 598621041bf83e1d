package promptsynth

import (
	"fmt"
	"strings"
)

const (
	// ProductIdentificationInstruction asks a vision model to describe a reference image.
	ProductIdentificationInstruction = "Analyze this product image. Describe its material, color, shape, and key features in detail for a photographer."

	// BackgroundDesignInstruction asks for an English kitchen scene around the product.
	BackgroundDesignInstruction = "Design a kitchen background scene for product photography. " +
		"Keep the product unchanged. Return ONLY an English prompt describing the scene."

	// TranslationInstruction asks for a bare Simplified Chinese translation.
	TranslationInstruction = "You are a professional translator. Translate the following text to Simplified Chinese (简体中文). Return ONLY the translated text."

	// LayoutUserText accompanies the reference image in a layout request.
	LayoutUserText = "Analyze whitespace for text placement"

	// DefaultLayoutCopy is used in layout requests when no marketing copy is given.
	DefaultLayoutCopy = "Hot Sale"

	copyPlaceholder = "{copy}"
)

// DefaultLayoutInstruction is the built-in layout planning instruction.
// "{copy}" is replaced with the marketing copy.
const DefaultLayoutInstruction = `你是电商视觉总监（Vision 模式）。请基于所给产品图进行中文排版规划，严格遵循“视觉策略库”。
视觉策略库：
- F型视觉路径：主标题与核心卖点优先布局在左上/左侧。
- 颜色情感映射：红=促销/紧迫，金=高端/信任，白=清爽；需保证文本与背景对比度充足。
- 损失厌恶文案：适度加入“错过/限时/库存”等提示提升转化。
输出规范（Taobao_Master_Layout_System）：
返回 JSON：
{
  "Taobao_Master_Layout_System": {
    "layout_template": "layout-classic-left|layout-modern-bottom|layout-clean-right",
    "badges": ["简体中文短标签", "简体中文短标签"],
    "background_fx": {
      "style": "text-style-a|text-style-b|text-style-c",
      "visual_path": "F-path|Z-path",
      "color_strategy": {"primary": "#RRGGBB", "accent": "#RRGGBB", "emotion": "促销/高端/清爽"}
    },
    "title": "{copy}",
    "subtitle": "4-6 字简体中文副标题"
  }
}
所有可见文案必须为简体中文，仅返回有效 JSON。`

// DefaultOptimizeInstruction is the built-in prompt optimisation instruction.
const DefaultOptimizeInstruction = `{
  "role": "Visual prompt strategist for e-commerce product photography",
  "steps": [
    {"step_id": 0, "name": "Reference analysis", "action": "Describe the product in any reference image: material, color, shape, key features."},
    {"step_id": 1, "name": "Requirement decomposition", "action": "Split the user request into atomic visual requirements."},
    {"step_id": 2, "name": "Constrained instruction", "action": "Write the prompt without pronouns, quote any literal text, preserve the product exactly."},
    {"step_id": 3, "name": "JSON output", "output": {
      "positive_prompt": "string (final optimized English prompt)",
      "negative_prompt": "string",
      "positive_prompt_zh": "string",
      "execution_advice": "string"
    }}
  ],
  "instruction": "Follow the steps above for the user's request and any attached images. Output ONLY valid JSON matching the step 3 output."
}`

// LayoutInstruction fills the copy placeholder of a layout template. An empty
// template selects DefaultLayoutInstruction.
func LayoutInstruction(template, marketingCopy string) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultLayoutInstruction
	}
	return strings.ReplaceAll(template, copyPlaceholder, LayoutCopy(marketingCopy))
}

// LayoutCopy returns the marketing copy, or DefaultLayoutCopy when it is blank.
func LayoutCopy(marketingCopy string) string {
	if c := strings.TrimSpace(marketingCopy); c != "" {
		return c
	}
	return DefaultLayoutCopy
}

// BackgroundDesignRequest is the user turn for a background design call.
func BackgroundDesignRequest(productDescription string) string {
	desc := strings.TrimSpace(productDescription)
	if desc == "" {
		desc = "unknown"
	}
	return fmt.Sprintf("Product: %s", desc)
}
