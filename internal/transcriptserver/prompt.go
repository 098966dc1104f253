package transcriptserver

// LLM prompt templates. Data only, no logic.

const summarySystemPrompt = `You summarize YouTube video transcripts for AI agents.
Write plain markdown. Be factual and only use the transcript.`

// summaryPrompt args: focus line, transcript language, transcript text.
const summaryPrompt = `Summarize the transcript below.

%s
Structure:
- One-paragraph overview (3-4 sentences).
- 4-8 bullet points with the key claims, numbers, names and steps, in order of appearance.

Answer in the transcript's language (%s).

Transcript:
%s`
