package config

const (
	defaultModelsDir               = "models"
	defaultTranscriptsDir          = "transcripts"
	defaultModelName               = "tiny"
	defaultDownloadBaseURL         = "https://openaipublic.azureedge.net/main/whisper/models"
	defaultDownloadTimeout         = 1800
	defaultTask                    = "transcribe"
	defaultBeamSize                = 5
	defaultBestOf                  = 5
	defaultTimestampInterval       = 180
	defaultTranscriptionCommand    = "uvx"
	defaultTranscriptionDevice     = "cpu"
	defaultLogFormat               = "console"
	defaultLogLevel                = "warn"
	defaultConditionOnPreviousText = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ModelsDir:      defaultModelsDir,
			TranscriptsDir: defaultTranscriptsDir,
		},
		Model: Model{
			Name:            defaultModelName,
			DownloadBaseURL: defaultDownloadBaseURL,
			DownloadTimeout: defaultDownloadTimeout,
			VerifyChecksum:  true,
		},
		Transcription: Transcription{
			SuppressLanguages:       []string{"ru", "en"},
			Task:                    defaultTask,
			BeamSize:                defaultBeamSize,
			BestOf:                  defaultBestOf,
			Temperature:             []float64{0.0},
			ConditionOnPreviousText: defaultConditionOnPreviousText,
			TimestampInterval:       defaultTimestampInterval,
			Command:                 defaultTranscriptionCommand,
			Device:                  defaultTranscriptionDevice,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
