// Package promptsynth builds the instruction texts sent to the chat backend
// and assembles generation prompts from product signals.
package promptsynth

import (
	"fmt"
	"strings"

	"product-image-workers/internal/style/archetype"
)

// ClassificationUserText is the user turn paired with the classification
// instruction.
const ClassificationUserText = "请分析产品并返回 JSON 格式的结果"

// emptyCopyPlaceholder stands in for missing marketing copy.
const emptyCopyPlaceholder = "无"

// SynthesizedPrompt is a system instruction plus the user turn that goes with it.
type SynthesizedPrompt struct {
	InstructionText string `json:"instructionText"`
	UserText        string `json:"userText"`
}

// OutputFields is the JSON contract the classification instruction asks for.
var OutputFields = []string{"style_id", "optimized_prompt", "title", "subtitle", "badges"}

// BuildClassificationInstruction embeds the archetype taxonomy, the output
// contract and the product input into a single system instruction.
func BuildClassificationInstruction(productText, marketingCopy string) SynthesizedPrompt {
	copyLine := marketingCopy
	if strings.TrimSpace(copyLine) == "" {
		copyLine = emptyCopyPlaceholder
	}

	var parts []string
	parts = append(parts, "你是一位专业的电商视觉设计专家。请分析产品并返回优化后的生图指令。")
	parts = append(parts, "")
	parts = append(parts, "**核心任务**：")
	parts = append(parts, "1. 分析产品类型，选择最合适的视觉风格")
	parts = append(parts, "2. 生成优化后的英文图片描述")
	parts = append(parts, "3. 提取营销文案的关键卖点")
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("**%d 大视觉风格**：", len(archetype.IDs())))
	for _, a := range archetype.All() {
		parts = append(parts, fmt.Sprintf("- %s: %s（%s）- %s", a.ID, a.DisplayName, a.Domain, a.Summary))
	}
	parts = append(parts, "")
	parts = append(parts, "**返回格式（必须是有效的 JSON）**：")
	parts = append(parts, "{")
	parts = append(parts, `    "style_id": "选择的风格ID（必须是上述5个之一）",`)
	parts = append(parts, `    "optimized_prompt": "优化后的英文生图描述（简洁专业）",`)
	parts = append(parts, `    "title": "主标题（如果用户提供了文案，必须严格使用用户文案，不得修改；否则生成8-12字中文卖点）",`)
	parts = append(parts, `    "subtitle": "副标题（如果用户提供了文案，必须严格使用用户文案；否则生成补充说明）",`)
	parts = append(parts, `    "badges": ["卖点1", "卖点2"]`)
	parts = append(parts, "}")
	parts = append(parts, "")
	parts = append(parts, `**核心材质约束**：严禁添加用户未指定的材质描述（如"金属"、"玻璃"、"磨砂"等）。必须保持产品原本的材质特征。`)
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("**当前产品**: %s", productText))
	parts = append(parts, fmt.Sprintf("**营销文案**: %s", copyLine))
	parts = append(parts, "")
	parts = append(parts, "请严格按照 JSON 格式返回，确保 style_id 是上述 5 个之一。")

	return SynthesizedPrompt{
		InstructionText: strings.Join(parts, "\n"),
		UserText:        ClassificationUserText,
	}
}
