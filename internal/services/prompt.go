package services

import (
	"fmt"

	"alfredoptarigan/interview-simulator/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSystemInstruction creates the interviewer persona prompt for the
// session. The instruction is derived once per interview and stays fixed
// for the session's lifetime.
func (pb *PromptBuilder) BuildSystemInstruction(language models.Language, jobTitle string) string {
	if language == models.LanguageZH {
		return fmt.Sprintf("你是一位专业的招聘经理和高级工程师，正在为“%s”职位进行一场中文面试。你的目标是根据职位描述评估候选人的技能和经验。请根据提供的职位描述和候选人的简历，提出有见地的、开放性的问题。请保持专业和对话式的语气。首先问候候选人，然后提出你的第一个相关问题。不要询问候选人的姓名，你应该假设正在直接与他们交谈。", jobTitle)
	}

	return fmt.Sprintf("You are an expert hiring manager and senior engineer conducting a job interview in English for the position of '%s'. Your goal is to assess the candidate's skills and experience against the job description. Ask insightful, open-ended questions based on the provided job description and the candidate's resume. Maintain a professional and conversational tone. Start the interview by greeting the candidate and then ask your first relevant question. Do not ask for their name, as you should assume you are speaking directly to them.", jobTitle)
}

// BuildInitialMessage creates the text part of the opening multimodal
// message; the resume travels alongside it as inline bytes.
func (pb *PromptBuilder) BuildInitialMessage(language models.Language, responsibilities, requirements string) string {
	if language == models.LanguageZH {
		return fmt.Sprintf("这是职位描述，候选人的简历附后。请开始面试。\n\n## 岗位职责:\n%s\n\n## 岗位要求:\n%s", responsibilities, requirements)
	}

	return fmt.Sprintf("Here is the job description. The candidate's resume is attached. Please begin the interview.\n\n## Job Responsibilities:\n%s\n\n## Job Requirements:\n%s", responsibilities, requirements)
}

// BuildAutoReplyPrompt wraps the interviewer's last question in the
// instruction that asks the model to answer it in the candidate's voice.
// This wrapper turn is never shown in the visible history.
func (pb *PromptBuilder) BuildAutoReplyPrompt(language models.Language, lastQuestion string) string {
	if language == models.LanguageZH {
		return fmt.Sprintf("请严格根据所提供的简历，以第一人称的视角，扮演候选人来回答您刚才提出的最后一个问题。请只输出回答本身，不要包含任何介绍或评论。\n\nThe last question was: %q", lastQuestion)
	}

	return fmt.Sprintf("Based strictly on the resume provided, please generate a first-person response to the last question you asked, as if you were the candidate. Only output the answer itself, without any introduction or commentary.\n\nThe last question was: %q", lastQuestion)
}

// StartErrorText is the synthetic interviewer turn shown when the
// interview could not be started.
func (pb *PromptBuilder) StartErrorText(language models.Language, cause error) string {
	if language == models.LanguageZH {
		return fmt.Sprintf("抱歉，无法开始面试。请检查您的输入后重试。错误：%v", cause)
	}

	return fmt.Sprintf("Sorry, I couldn't start the interview. Please check your inputs and try again. Error: %v", cause)
}

// ExchangeErrorText is the synthetic interviewer turn appended when a
// mid-conversation model call fails.
func (pb *PromptBuilder) ExchangeErrorText(language models.Language, cause error) string {
	if language == models.LanguageZH {
		return fmt.Sprintf("抱歉，发生了错误：%v", cause)
	}

	return fmt.Sprintf("Sorry, an error occurred: %v", cause)
}

// AutoReplyErrorText mirrors ExchangeErrorText for failures of the hidden
// answer-generation call.
func (pb *PromptBuilder) AutoReplyErrorText(language models.Language, cause error) string {
	if language == models.LanguageZH {
		return fmt.Sprintf("抱歉，自动回答时发生了错误：%v", cause)
	}

	return fmt.Sprintf("Sorry, an error occurred during auto-reply: %v", cause)
}
