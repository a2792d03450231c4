package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSScorePrompt creates the scoring prompt. The category weights add up to 115
// and are sent as written.
func (pb *PromptBuilder) BuildATSScorePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an advanced, non-repetitive AI-based ATS evaluator designed to perform **accurate and diverse scoring** of resumes.

You must calculate the ATS score out of 100 using the following weighted criteria:
{
  "Skill Match (Contextual)": 30,
  "Experience Relevance & Depth": 25,
  "Project & Achievement Validation": 15,
  "AI-Generated Resume Detection": 5,
  "Cultural & Soft Skills Fit": 10,
  "Consistency Check": 15,
  "Resume Quality Score": 5,
  "Interview & Behavioral Prediction": 5,
  "Competitive Fit & Market Standing": 5
}

### Strict Scoring Guidelines:
1. **Each component must be scored individually**, even if a section is missing.
2. **Avoid giving similar ATS scores across different resumes**. Add randomness based on realistic market variance and industry fit.
3. Provide **subtle deductions** for missing details or vague wording.
4. Do **not round up scores** unnecessarily; decimal values are encouraged (e.g., 82.5, 76.3).
5. Use **clear judgment** for vague or overly templated resumes, do not favor verbosity.
6. Your final score must **reflect real-world industry expectations** for 2025 job markets, tech/non-tech roles, and resume standards.

Return ONLY a **JSON object** like this (no markdown, no code formatting):
{
  "ats_score": number, // float with one decimal point (e.g., 76.8)
  "reason": string // Reasoning with 1-2 lines referencing specific scoring areas
}

Resume text:
%s
`, resumeText)
}

// BuildResumeFieldsPrompt creates the structured field extraction prompt.
func (pb *PromptBuilder) BuildResumeFieldsPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an intelligent resume radar and analyzer.

Parse the resume text below and return a JSON object in the following format (no markdown, no explanation, no code block):

{
  "name",
  "contact_number",
  "email_address",
  "location",
  "skills", // top 5 relevant technical skills
  "education",
  "work_experience": [
    {
      "job_title",
      "company_name",
      "start_date",
      "end_date",
      "duration_months",
      "description"
    }
  ],
  "key_strengths",
  "highlights",
  "suggested_resume_category",
  "recommended_job_roles",
  "number_of_job_jumps",
  "average_job_duration_months"
}

Instructions:
- "skills": Extract and return only the top 5 most relevant technical skills based on frequency and context. Avoid soft skills or generic terms.
- "number_of_job_jumps": Count the number of times the candidate switched jobs. If only one job is listed, return 0.
- "average_job_duration_months": Calculate average job duration in months using available start and end dates. If a job is marked "Present", use the current month (assume it's April 2025).
- Return numerical values for "number_of_job_jumps" and "average_job_duration_months", even if estimation is needed.
- Use float values (e.g., 9.0, 15.5) for "average_job_duration_months".

Resume text:
%s
`, resumeText)
}

// BuildOCRPrompt instructs a vision model to transcribe a scanned document.
func (pb *PromptBuilder) BuildOCRPrompt() string {
	return `Transcribe all readable text in this document exactly as it appears, in reading order.
Return plain text only. Do not summarise, translate, or add commentary.`
}
