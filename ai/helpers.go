package ai

import "strings"

// ParseVerdict reads the classifier's answer. The rule is a literal
// substring check: any response containing "yes" after lowercasing counts
// as a search verdict, everything else does not. A word that merely
// contains "yes" therefore false-positives; that quirk is part of the
// contract and must not be tightened without a product decision.
func ParseVerdict(resp string) bool {
	return strings.Contains(strings.ToLower(resp), "yes")
}

// CleanResponse scrubs model artifacts from a reply before it is sent.
func CleanResponse(resp string) string {
	resp = strings.ReplaceAll(resp, "<|im_start|>", "")
	resp = strings.ReplaceAll(resp, "<|im_end|>", "")
	resp = strings.TrimPrefix(resp, "!") // remove any leading ! so that we dont trigger commands
	resp = strings.TrimPrefix(resp, "/") // remove any leading / so that we dont trigger commands
	return strings.TrimSpace(resp)
}
