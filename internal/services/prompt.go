package services

import "fmt"

// Prompt text and JSON schemas for the structured generation calls.
// Schemas are strict: every property required, no extras allowed.

func obj(props map[string]any, required ...string) map[string]any {
	if required == nil {
		required = []string{}
		for k := range props {
			required = append(required, k)
		}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func arr(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func str() map[string]any {
	return map[string]any{"type": "string"}
}

func strEnum(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

const documentInstructions = `You are an expert document creator. Generate well-structured, professional content.

Structure the content with clear sections. Each section should have a title and detailed content.
Use ### for subsection headers within section content.
Use **bold** for emphasis on key terms.
Use *italics* for definitions or special terms.
Use bullet points (- or *) for lists.
Keep paragraphs focused and concise.

Provide a title for the document, the sections, a brief summary, and relevant keywords.`

func documentContentSchema() map[string]any {
	section := obj(map[string]any{
		"title":   str(),
		"content": str(),
	})
	return obj(map[string]any{
		"title":    str(),
		"sections": arr(section),
		"summary":  str(),
		"keywords": arr(str()),
	})
}

func presentationInstructions(topic string, numSlides int) string {
	return fmt.Sprintf(`Create a compelling %d-slide presentation about %s.

For each slide, provide:
1. A clear, engaging title
2. The appropriate slide layout type from these options:
   - TITLE_CENTERED: Opening slide with centered title and subtitle
   - TITLE_LEFT: Title and subtitle aligned left
   - TITLE_GRADIENT: Bold opening or closing slide on a darker background
   - BULLET_POINTS: Bullet points
   - NUMBER_POINTS: Numbered points
   - TWO_COLUMNS_EQUAL: Two equal columns
   - TWO_COLUMNS_LEFT_WIDE: Two columns with wider left column
   - TWO_COLUMNS_RIGHT_WIDE: Two columns with wider right column
   - IMAGE_CENTERED: Centered image with optional caption
   - QUOTE_CENTERED: Featured quote
   - QUOTE_SIDE: Quote with supporting context

3. Content appropriate for the layout:
   - For TITLE slides: Include a subtitle
   - For BULLET_POINTS and NUMBER_POINTS: List 3-5 key points
   - For TWO_COLUMNS slides: MUST provide content in this format:
     ["leftContent: [Your left column content here]", "rightContent: [Your right column content here]"]
   - For IMAGE_CENTERED: Provide an image description or placeholder
   - For QUOTE slides: First content item is the quote, second is the attribution

4. For image slides, provide a clear description of what the image should show.

IMPORTANT RULES:
1. For TWO_COLUMNS slides, you MUST provide exactly two items in the content array:
   - First item must start with "leftContent:" followed by the content
   - Second item must start with "rightContent:" followed by the content
2. Never leave content empty for any slide type
3. For BULLET_POINTS slides, always provide 3-5 bullet points

Also suggest:
1. A presentation theme from these options: MIDNIGHT, SUNSET, FOREST, TECH, MINIMAL
2. A professional email to accompany the presentation

Make the content engaging, professional, and well-structured.
Ensure smooth transitions between slides and a clear narrative flow.`, numSlides, topic)
}

func presentationStructureSchema() map[string]any {
	slide := obj(map[string]any{
		"layout":           str(),
		"title":            str(),
		"subtitle":         str(),
		"content":          arr(str()),
		"imagePlaceholder": str(),
	})
	email := obj(map[string]any{
		"subject": str(),
		"body":    str(),
	})
	return obj(map[string]any{
		"slides": arr(slide),
		"theme":  strEnum("MIDNIGHT", "SUNSET", "FOREST", "TECH", "MINIMAL"),
		"email":  email,
	})
}

func posterInstructions(topic string) string {
	return fmt.Sprintf(`Create a complete design package about %s, including both design specifications and email content.

DESIGN SPECIFICATIONS:
1. Create a powerful, attention-grabbing title
2. Write a clear description of what the design should visually communicate
3. Include a short, impactful text overlay (tagline or call to action)
4. Choose the most appropriate visual style from these options:
   - POSTER_DIGITAL: Best for posters and marketing materials (2D art poster style)
   - BOLD_VECTOR: Best for logos and brand assets (clean vector art)
   - REALISTIC: Best for product mockups and realistic scenes
   - MODERN_MINIMAL: Best for clean, minimalist designs
   - NEON_FUTURISTIC: Best for tech and futuristic themes

5. Choose the most appropriate size format based on the content:
   - SQUARE_HD: 1080x1080 - Best for high-detail square images (social media, logos)
   - SQUARE: 800x800 - Standard square format (avatars, thumbnails)
   - PORTRAIT_4_3: 1080x1440 - Portrait format for vertical designs
   - PORTRAIT_16_9: 1080x1920 - Tall portrait format (mobile, stories)
   - LANDSCAPE_4_3: 1440x1080 - Classic landscape format
   - LANDSCAPE_16_9: 1920x1080 - Widescreen landscape format (presentations)

6. Suggest a color theme that reinforces the message
7. Define the mood the design should convey
8. List key visual elements that should be included
9. Provide notes about the composition and layout

EMAIL CONTENT:
1. Create an engaging subject line that will grab attention
2. Write a professional email body that includes:
   - Warm greeting
   - Brief introduction of the design
   - Key highlights and intended use
   - Any specific notes about the design choices
   - Professional closing

Choose the visual style and size format that best match the topic and intended use.
Make it visually striking and professional while maintaining clarity of message.
Ensure all elements work together to create a cohesive design that effectively communicates the topic.`, topic)
}

func designResponseSchema() map[string]any {
	content := obj(map[string]any{
		"title":             str(),
		"description":       str(),
		"text_overlay":      str(),
		"visual_style":      strEnum(illustrationStyleNames()...),
		"size_format":       strEnum(imageSizeNames()...),
		"color_theme":       str(),
		"mood":              str(),
		"key_elements":      arr(str()),
		"composition_notes": str(),
	})
	email := obj(map[string]any{
		"subject": str(),
		"body":    str(),
	})
	return obj(map[string]any{
		"content": content,
		"email":   email,
	})
}

const calendarInstructions = `You are a scheduling assistant. Extract a single calendar event from the user's request.

Provide:
1. A concise event summary (title)
2. A description with any relevant details from the request
3. The start and end times in RFC 3339 format (e.g. 2024-05-01T15:00:00Z).
   If no duration is given, assume one hour.
4. Attendee email addresses mentioned in the request, if any.

Use the current date supplied with the request to resolve relative dates like "tomorrow" or "next Friday".`

func eventDetailsSchema() map[string]any {
	return obj(map[string]any{
		"summary":     str(),
		"description": str(),
		"start_time":  str(),
		"end_time":    str(),
		"attendees":   arr(str()),
	})
}
