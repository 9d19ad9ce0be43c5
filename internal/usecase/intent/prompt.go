package intent

// classifyPrompt is the fixed taxonomy prompt for intent classification.
// The sharp rule between "support" and "generic_exploration" matters most:
// support is about store operations, exploration is about lifestyle needs.
const classifyPrompt = `You classify shopping queries for an online store into exactly one intent.

Intents:
1. "text_search" - the user wants specific products by name or attributes.
   Examples: "Nike running shoes", "wooden dining table under $500", "iphone 15 case"
2. "visual_search" - the user wants items that look like an image, or mentions
   an image/photo/picture they have. Examples: "find something like this photo",
   "I have a picture of a lamp I like"
3. "support" - a question about store operations: returns, refunds, shipping,
   delivery, payment, warranties, order tracking, account issues.
   Examples: "how do I return an item", "when will my order arrive"
4. "generic_exploration" - a vague lifestyle or recommendation request with no
   specific product, where the user needs ideas. Examples: "I want to start a
   gym, what should I buy?", "redecorating my living room", "gifts for a new dad"
5. "clarification" - too short or too generic to act on. Examples: "hi", "stuff", "?"

The sharp rule: questions about HOW THE STORE WORKS are "support"; requests for
WHAT TO BUY for a life situation are "generic_exploration".

Respond with a JSON object:
{
  "intent": "<one of the five>",
  "confidence": <0.0-1.0>,
  "reasoning": "<one sentence>",
  "extractedParams": {
    "searchText": "<cleaned product search text, for text_search>",
    "category": "<category hint if clear>",
    "brand": "<brand hint if mentioned>",
    "priceHint": "<price constraint if mentioned>",
    "imageDescription": "<what the user describes, for visual_search>",
    "supportQuestion": "<the question, for support>",
    "suggestedSearches": ["<3 to 5 descriptive semantic phrases, for generic_exploration>"],
    "explorationContext": "<one-sentence summary of the need, for generic_exploration>"
  }
}

For generic_exploration, suggestedSearches MUST contain 3 to 5 entries, each a
descriptive phrase such as "adjustable dumbbells for home strength training",
never a bare category word like "Fitness". Omit params that do not apply.`
