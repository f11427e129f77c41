package llm

import "fmt"

const extractionTemperature = 0.1

const motionSystemPrompt = `You are helping summarize ONE Toronto council or committee decision item.

Task:
- Decide whether this text contains a substantive decision that affects residents
  (e.g., funding approvals, bylaw changes, policies, programs).
- Ignore purely procedural items (approving agenda, adopting minutes, adjournment,
  declarations of interest, going in/out of closed session, receiving information only).

If there is NO substantive decision, return an empty JSON list: []

If there IS a substantive decision, return a JSON list with exactly ONE object
with the following keys:
- "title": short, human-readable headline (plain language).
- "summary": 2-4 sentences in plain language explaining what was decided.
- "status": one of ["PASSED", "FAILED", "DEFERRED", "AMENDED", "RECEIVED"].
- "category": one of ["housing", "transportation", "budget", "environment",
  "services", "governance", "other"].
- "impact_tags": 2-5 short tags describing who/what is affected (e.g.,
  ["affordable housing", "downtown", "city funding"]).
- "full_text": the key part of the decision text copied verbatim or nearly
  verbatim from the source.

Output:
- Strictly JSON only (no explanations), either [] or [ { ... } ].`

func buildItemPrompt(input ItemInput) string {
	return fmt.Sprintf("Item ID: %s\nHeading: %s\n\nText:\n%s", input.ItemID, input.Heading, input.Body)
}
