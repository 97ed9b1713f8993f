package config

const (
	defaultConfigPath                 = "~/.config/mediastack/config.toml"
	defaultIndexDir                   = "~/.local/share/mediastack"
	defaultLogDir                     = "~/.local/share/mediastack/logs"
	defaultLogFormat                  = "console"
	defaultLogLevel                   = "info"
	defaultFolderPlaceholderExtension = ".mkv"
)

var defaultVideoFileExtensions = []string{
	".m4v", ".3gp", ".nsv", ".ts", ".ty", ".strm", ".rm", ".rmvb", ".ifo", ".mov",
	".qt", ".divx", ".xvid", ".bivx", ".vob", ".nrg", ".img", ".iso", ".pva", ".wmv",
	".asf", ".asx", ".ogm", ".m2v", ".avi", ".bin", ".dvr-ms", ".mpg", ".mpeg", ".mp4",
	".mkv", ".avc", ".vp3", ".svq3", ".nuv", ".viv", ".dv", ".fli", ".flv", ".001",
	".tp", ".webm", ".m2ts",
}

var defaultStubFileExtensions = []string{".disc"}

var defaultAudioFileExtensions = []string{
	".nsv", ".m4a", ".flac", ".aac", ".strm", ".pls", ".rm", ".mpa", ".wav", ".wma",
	".ogg", ".opus", ".mp3", ".mp2", ".mod", ".ac3", ".dts", ".cue", ".aif", ".aiff",
	".ape", ".mac", ".mpc", ".shn", ".wv", ".m4b", ".oga", ".dsf", ".mka",
}

// The stacking expressions capture (title)(volume)(ignore)(extension).
var defaultVideoFileStackingExpressions = []string{
	`(.*?)([ _.-]*(?:cd|dvd|p(?:ar)?t|dis[ck])[ _.-]*[0-9]+)(.*?)(\.[^.]+)$`,
	`(.*?)([ _.-]*(?:cd|dvd|p(?:ar)?t|dis[ck])[ _.-]*[a-d])(.*?)(\.[^.]+)$`,
	`(.*?)([ ._-]*[a-d])(.*?)(\.[^.]+)$`,
}

var defaultAudioBookPartsExpressions = []string{
	`ch(?:apter)?[\s_-]?(?<chapter>\d+)`,
	`p(?:ar)?t[\s_-]?(?<part>\d+)`,
	`^(?<chapter>\d+)`,
	`(?<part>\d+)$`,
	`(?<chapter>\d+)_(?<part>\d+)`,
	`dis(?:c|k)[\s_-]?(?<chapter>\d+)`,
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			IndexDir: defaultIndexDir,
			LogDir:   defaultLogDir,
		},
		Naming: Naming{
			VideoFileExtensions:          cloneStrings(defaultVideoFileExtensions),
			StubFileExtensions:           cloneStrings(defaultStubFileExtensions),
			AudioFileExtensions:          cloneStrings(defaultAudioFileExtensions),
			VideoFileStackingExpressions: cloneStrings(defaultVideoFileStackingExpressions),
			AudioBookPartsExpressions:    cloneStrings(defaultAudioBookPartsExpressions),
			FolderPlaceholderExtension:   defaultFolderPlaceholderExtension,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
