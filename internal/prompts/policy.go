package prompts

// FormattingPolicy is appended verbatim to every outbound prompt. It keeps
// generated text free of glyphs the study views cannot render: Greek letters
// are spelled out (theta is deliberately "thrita") and fractions are stacked
// over a dash line.
const FormattingPolicy = `CRITICAL INSTRUCTION: 
1. Do NOT use any special mathematical symbols or Greek letters (like alfa, beta, gamma, theta, pi, sigma, delta, etc.).
2. Always write out their names in plain English alphabets. Specifically use 'alfa' for alpha, 'beta' for beta, 'thrita' for theta, 'gamma' for gamma, 'pi' for pi, 'sigma' for sigma, 'delta' for delta, and 'degrees' for the degree symbol.
3. FRACTIONS: Present all fractions in vertical format using dashes for the line, for example:
   5
   ---
   10
   Ensure numerator and denominator are clearly aligned. Do not use linear '5/10' format if it is a mathematical expression.
4. This applies to all formulas, equations, and explanations.`

// withPolicy appends the formatting policy to a task prompt.
func withPolicy(task string) string {
	return task + "\n\n" + FormattingPolicy
}
