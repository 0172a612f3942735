package openaigen

import (
	"fmt"
	"strings"

	"github.com/yungbote/storynest-backend/internal/ai"
)

const storySystemPrompt = `You are a helpful and creative assistant designed to generate engaging and age-appropriate stories for children. Your stories should be fun, imaginative, and suitable for the given age group, ensuring they are both entertaining and educational.`

func storyUserPrompt(p ai.StoryPrompt) string {
	return fmt.Sprintf(`Generate a story for a child of age %d with the following details:
- Story Title: "%s"
- Story Description: "%s"
- The story should contain a maximum of %d pages.
- Each page should have a "pageText" field containing a portion of the story.
- Each page should have a minimum of 250 words.
- The response should follow this format:

{
  "storyTitle": "%s",
  "storyDescription": "%s",
  "storyContent": [
    {
      "pageText": "Text for page 1"
    },
    {
      "pageText": "Text for page 2"
    }
  ]
}

Ensure that the story is age-appropriate for a child of age %d.`,
		p.ChildAge, p.Title, p.Description, p.MaxPages, p.Title, p.Description, p.ChildAge)
}

const questionsSystemPrompt = `You are a helpful and creative assistant designed to generate engaging and age-appropriate questions for children. Your questions should be fun, imaginative, and suitable for the given story, ensuring they are both entertaining and educational.`

func questionsUserPrompt(storyTitle, wholeStory string) string {
	return fmt.Sprintf(`Generate questions and answers for the story "%s" with the story content:

%s

The output should be strictly in JSON format with the following structure:
{
  "questions": [
    {
      "question": "The question you want to ask",
      "answer": "The correct answer which you think is right",
      "userAnswer": "The answer given by the user (You must leave this empty)"
    }
  ]
}
Generate up to 5 questions in this structure. Ensure that the JSON is valid, properly formatted, and contains no additional commentary or explanations.`,
		storyTitle, wholeStory)
}

const feedbackSystemPrompt = `You are a supportive reading assistant focused on enhancing children's reading comprehension. You will be given the full story, the question, the child's answer, and the correct answer. Use this information to compare the child's response with the correct answer and assess their understanding. Provide constructive and encouraging feedback that highlights key areas for improvement, helping the child connect with important details and themes in the story. Offer a rating to indicate their comprehension level, and keep the feedback positive and motivating to foster a love for reading.`

func feedbackUserPrompt(input ai.GradingInput) string {
	var b strings.Builder
	b.WriteString(`Evaluate the user's responses to the following questions based on the provided story. For each question, compare the user's answer with the correct answer, focusing on how accurately, relevantly, and clearly the user has addressed the question.
For each question, provide:
1. A rating out of 5 based on how accurately the user's answer shows understanding of the story.
2. Constructive feedback that helps the child improve their comprehension skills.
3. Positive reinforcement to keep the child motivated.

Output the results in strict JSON format as shown below:

{
  "results": [
    {
      "question": "Question text here",
      "rating": 4,
      "answer": "Correct answer here",
      "userAnswer": "User's answer here",
      "feedback": "Feedback text here.",
      "positiveReinforcement": "Great effort!"
    }
  ]
}

Now, please evaluate the following:

Full Story:
"`)
	b.WriteString(input.WholeStory)
	b.WriteString("\"\n\nQuestions and Answers:\n")
	for i, q := range input.Questions {
		fmt.Fprintf(&b, "\n%d. Question: %q\n   - Correct Answer: %q\n   - User's Answer: %q\n",
			i+1, q.Question, q.Answer, q.UserAnswer)
	}
	b.WriteString(`
Please return the feedback and rating for each question in the exact JSON format demonstrated above. Keep the feedback child-friendly and focused on building reading comprehension skills.`)
	return b.String()
}

const imageSystemPrompt = `You are an AI assistant designed to generate images for children's stories. Focus on extracting key points from long text and use these to generate simple, child-friendly, imaginative images. Ensure images align with the age group and story's tone.`

func imageUserPrompt(pageText string) string {
	return fmt.Sprintf(`Extract key visual elements not more than 30 words or two short sentences from this story content: %s. Focus on the most important details in sequence. Ensure the image is vivid, imaginative, and age-appropriate, capturing the key scene and emotions.`, pageText)
}
