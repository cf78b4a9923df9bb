package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the instruction for a single
// resume-versus-job-description evaluation. The prompt embeds a worked
// example of the exact output schema and enumerates the allowed
// recommendation values and numeric constraints.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(jobDescription, resumeText, candidateName string) string {
	return fmt.Sprintf(`You are an expert HR recruiter. Analyze the following resume against the job description and provide a comprehensive evaluation.

JOB DESCRIPTION:
%s

RESUME:
%s

Please provide a detailed analysis in the following JSON format:
{
    "candidate_name": "%s",
    "match_score": 75,
    "experience_years": 5,
    "matching_skills": ["Python", "JavaScript", "React"],
    "missing_skills": ["AWS", "Docker"],
    "strengths": ["Strong technical background", "Good communication skills"],
    "weaknesses": ["Limited cloud experience", "No DevOps experience"],
    "recommendation": "review",
    "summary": "Good technical candidate with room for growth"
}

Important rules:
1. match_score must be a number between 0-100
2. experience_years must be a number (estimate if not clear)
3. recommendation must be exactly one of: "qualified", "review", "not_qualified"
4. All arrays must contain strings
5. Return ONLY the JSON object, no additional text or formatting`,
		jobDescription, resumeText, candidateName)
}

// BuildSkillExtractionPrompt asks the model to enumerate every technical
// skill mentioned in the given text as a single JSON object.
func (pb *PromptBuilder) BuildSkillExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are an expert technical recruiter. Extract ALL technical skills mentioned in the following text.

TEXT:
%s

Return your answer in the following JSON format:
{
    "technical_skills": ["Python", "PostgreSQL", "Docker"]
}

Important rules:
1. Include programming languages, frameworks, databases, tools and platforms
2. Do not invent skills that are not mentioned in the text
3. Return ONLY the JSON object, no additional text or formatting`, text)
}

// BuildEchoPrompt creates the diagnostic prompt used by the test endpoint.
func (pb *PromptBuilder) BuildEchoPrompt(text string) string {
	return fmt.Sprintf(`Please respond with JSON {'message': 'AI is working', 'received_text': '%s'}`, text)
}
