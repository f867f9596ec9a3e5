package util

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogGlyphs | LogText | LogOpenGL | LogIO | LogSystem

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogGlyphs LogCategory = 1 << iota
	LogText
	LogOpenGL
	LogIO
	LogSystem
)

// logSink receives every line that passes the level and category filters.
var logSink = func(txt string) {
	println(txt)
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	logSink(txt)
}

func LogGlyphsInfo(txt string) {
	log(LogGlyphs, LogLevelInfo, txt)
}

func LogGlyphsDebug(txt string) {
	log(LogGlyphs, LogLevelDebug, txt)
}

func LogGlyphsWarning(txt string) {
	log(LogGlyphs, LogLevelWarning, txt)
}

func LogGlyphsError(txt string) {
	log(LogGlyphs, LogLevelError, txt)
}

func LogTextInfo(txt string) {
	log(LogText, LogLevelInfo, txt)
}

func LogTextWarning(txt string) {
	log(LogText, LogLevelWarning, txt)
}

func LogTextDebug(txt string) {
	log(LogText, LogLevelDebug, txt)
}

func LogTextError(txt string) {
	log(LogText, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlDebug(txt string) {
	log(LogOpenGL, LogLevelDebug, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

func LogGlWarning(txt string) {
	log(LogOpenGL, LogLevelWarning, txt)
}

// CaptureLog redirects all log output into the returned slice until the restore func is called.
func CaptureLog() (*[]string, func()) {
	var lines []string
	previous := logSink
	logSink = func(txt string) {
		lines = append(lines, txt)
	}
	return &lines, func() {
		logSink = previous
	}
}
