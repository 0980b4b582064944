package service

import (
	"fmt"

	"legalaid-backend/models"
)

const documentPromptTemplate = `You are a legal document analyzer specializing in Indian legal documents.
Analyze the following %s and extract key information in a structured JSON format.

Extract these details:
- Party Names (all complainants, accused, petitioners, respondents)
- Filing & Hearing Dates (include all important dates)
- Provisions/Sections Cited (include act names with section numbers)
- Subject Matter (main legal issue or dispute)
- Current Status (pending, resolved, appealed, etc.)
- Key Points (main arguments or findings)
- Simple Explanation (explain this document in simple language for a non-lawyer)
- Historical Precedents (list 3 similar cases from history with brief outcomes)
- Action Items (what the parties need to do next, if applicable)
%s
Respond in a properly formatted JSON structure with these fields:
{
  "documentType": "exact document type",
  "fileNumber": "case/file number if available",
  "caseNumber": "case number if available",
  "court": "court name if applicable",
  "parties": {
    "complainant": {"name": "name"},
    "accused": [{"name": "name"}],
    "petitioners": [{"name": "name", "represented": "lawyer name if available"}],
    "respondents": [{"name": "name", "represented": "lawyer name if available"}]
  },
  "dates": [
    {"date": "date in DD-MM-YYYY format", "description": "what this date represents"}
  ],
  "provisions": ["list of provisions cited"],
  "status": "current status of the document",
  "subject": "main subject of the document",
  "keyPoints": ["list of key points"],
  "simpleExplanation": "simple explanation of the document",
  "historicalPrecedents": [
    {"case": "case name", "outcome": "brief outcome"}
  ],
  "actionItems": ["list of actions needed"]
}

Document content:
%s
`

// documentExtras asks for the fields only some document types carry
var documentExtras = map[models.SchemaHint]string{
	models.HintFIR:      "- Police Station and FIR Number (as \"station\" and \"fileNumber\")\n",
	models.HintJudgment: "- Bench and Judgment Summary (as \"bench\" and \"judgmentSummary\")\n",
	models.HintPetition: "- Issuing Authority if the petition is addressed to one (as \"issuingAuthority\")\n",
}

// BuildDocumentPrompt returns the analysis prompt for a document of the given type
func BuildDocumentPrompt(hint models.SchemaHint, content string) string {
	return fmt.Sprintf(documentPromptTemplate, hint.DocumentLabel(), documentExtras[hint], content)
}

const legalityPromptTemplate = `You are an expert legal advisor specializing in Indian law. Analyze the following situation and determine whether it is legally VALID, VOID, or VOIDABLE according to Indian law.

Respond with a JSON object that contains the following properties:
1. "status" - Must be exactly one of these three values: "VALID", "VOID", or "VOIDABLE"
2. "simpleSummary" - A very brief, 1-2 sentence plain language summary of the assessment
3. "explanation" - A detailed explanation of your assessment and reasoning
4. "legalBasis" - The specific Indian laws, sections, or precedents that support your assessment
5. "examples" - An array of 2-3 similar historical cases or examples
6. "nextSteps" - An array of recommended actions the person should take

Format your response like this:
{
  "status": "VALID" or "VOID" or "VOIDABLE",
  "simpleSummary": "Very brief 1-2 sentence summary in plain language",
  "explanation": "Detailed explanation of why this situation has this legal status...",
  "legalBasis": "Relevant sections of Indian law that apply...",
  "examples": ["Example case 1 with outcome", "Example case 2 with outcome", "Example case 3 with outcome"],
  "nextSteps": ["Recommended action 1", "Recommended action 2", "Recommended action 3"]
}

The situation to assess:
%s
`

// BuildLegalityPrompt returns the VALID/VOID/VOIDABLE assessment prompt
func BuildLegalityPrompt(description string) string {
	return fmt.Sprintf(legalityPromptTemplate, description)
}

const penaltyPromptTemplate = `Your name is PenaltyPro AI.
You are an AI expert in legal penalties and fines across different jurisdictions.

Your task is to analyze the described offense and provide detailed penalty information in JSON format according to the country and region specified.

You must respond ONLY with a properly formatted JSON object with the following structure:
{
  "offenseLevel": "string",
  "severityScore": number,
  "minFine": number,
  "maxFine": number,
  "recommendedFine": number,
  "imprisonmentPossible": boolean,
  "imprisonmentDuration": "string",
  "additionalPenalties": ["string"],
  "legalReferences": ["string"],
  "countrySpecific": "string",
  "consultRecommended": boolean,
  "riskLevel": "string"
}

Field notes:
- offenseLevel: e.g. "Misdemeanor Class B", "Felony", "Infraction"
- severityScore: 1-10 scale (1 = lowest, 10 = highest severity)
- minFine, maxFine, recommendedFine: amounts in local currency
- imprisonmentDuration: if applicable, a range like "1-5 years" or "up to 30 days"
- riskLevel: "low", "medium", or "high" overall risk assessment

Important rules:
- Respond ONLY with the JSON object. No text before or after it.
- Do not include any explanations, introductions, or conclusions.
- Format must be valid JSON.
- Make reasonable estimates for fine ranges when specific values are not known.
- Do not include any code blocks or formatting around the JSON.

Now analyze the following:

Country: %s
Region: %s
Offense: %s`

// BuildPenaltyPrompt returns the penalty prediction prompt
func BuildPenaltyPrompt(country, region, offense string) string {
	return fmt.Sprintf(penaltyPromptTemplate, country, region, offense)
}
