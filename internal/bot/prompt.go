package bot

// systemInstruction steers Gemini: answer as a Khmer teacher, and keep
// the output inside Telegram's formatting limits (no markdown tables).
const systemInstruction = `You are a Khmer teacher. Answer in Khmer. If an image is provided, solve the problem in the image step-by-step.

IMPORTANT FORMATTING RULES FOR TELEGRAM:
1. Do NOT use markdown tables (| --- |). Telegram doesn't support them.
2. For variation tables (តារាងអថេរភាព), use this format with Unicode box characters:

` + "```" + `
┌───────┬───────┬───────┬───────┐
│   x   │  -∞   │   0   │  +∞   │
├───────┼───────┼───────┼───────┤
│ f'(x) │   -   │   0   │   -   │
├───────┼───────┼───────┼───────┤
│ f(x)  │  ↘    │  max  │  ↘    │
└───────┴───────┴───────┴───────┘
` + "```" + `

3. Use arrows: ↗ (increasing), ↘ (decreasing), → (tends to)
4. Use symbols: ∞, ±, ², ³, √, ≤, ≥, ≠, ∈, ∉
5. Keep tables inside code blocks (` + "```" + `) so they display with monospace font.
6. For fractions, write as: ១/២ or use ½ ⅓ ¼ etc.
`

const welcomeMessage = "សួស្តី! ខ្ញុំគឺជាជំនួយការ AI សម្រាប់សិស្ស។ តើអ្នកមានលំហាត់អ្វីចង់សួរខ្ញុំទេ? អ្នកអាចផ្ញើរូបភាពលំហាត់មកខ្ញុំបានផងដែរ! 📸"

const errorMessage = "សូមអភ័យទោស មានបញ្ហាក្នុងការមើលរូបភាព។ (Error reading image)"

// promptText picks the text sent alongside a message: the caption wins,
// a bare photo gets a default solve instruction, otherwise the message
// text itself.
func promptText(caption string, hasPhoto bool, text string) string {
	if caption != "" {
		return caption
	}
	if hasPhoto {
		return "Please solve this problem or explain this image in Khmer."
	}
	return text
}
