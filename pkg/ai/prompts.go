package ai

const ExtractFactsPrompt = `
# Task Context
You are an expert at extracting key scientific information from research papers.

# Detailed Task Description & Rules
From the provided research paper text, identify and list:
- explicitly mentioned equations (names or descriptive phrases)
- specific methodologies
- novel technologies
- cause-and-effect relationships

For cause-and-effect relationships, include an explanation of *why* the cause
leads to the effect, incorporating underlying mechanisms or concepts.
If an item is not found, return an empty list for that category.

# Output Formatting
Return a JSON object with this structure:
{
  "equations": ["equation_name_or_description", ...],
  "methodologies": ["methodology_name_or_description", ...],
  "technologies": ["technology_name_or_description", ...],
  "causal_relationships": [
    {
      "cause": "description of cause",
      "effect": "description of effect",
      "why": "explanation of why the cause leads to the effect"
    }
  ]
}
`
