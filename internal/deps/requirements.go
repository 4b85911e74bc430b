package deps

// FFmpegCommand is the binary used to convert non-WAV audio.
const FFmpegCommand = "ffmpeg"

// TranscriptionRequirements lists the external binaries a transcription run uses.
// ffmpeg is optional because WAV input is decoded natively.
func TranscriptionRequirements(transcriptionCommand string) []Requirement {
	return []Requirement{
		{
			Name:        "Whisper runner",
			Command:     transcriptionCommand,
			Description: "Runs openai-whisper inference",
		},
		{
			Name:        "FFmpeg",
			Command:     FFmpegCommand,
			Description: "Converts non-WAV audio to 16 kHz mono PCM",
			Optional:    true,
		},
	}
}
