package term

import "github.com/pterm/pterm"

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var lvl = LevelInfo

func SetLevel(level Level) {
	lvl = level
}

func Debug(a ...interface{}) {
	printLine(LevelDebug, pterm.FgLightCyan, a...)
}

func Debugf(format string, a ...interface{}) {
	printFormat(LevelDebug, pterm.FgLightCyan, format, a...)
}

func Info(a ...interface{}) {
	printLine(LevelInfo, pterm.FgLightGreen, a...)
}

func Infof(format string, a ...interface{}) {
	printFormat(LevelInfo, pterm.FgLightGreen, format, a...)
}

func Warn(a ...interface{}) {
	printLine(LevelWarn, pterm.FgYellow, a...)
}

func Warnf(format string, a ...interface{}) {
	printFormat(LevelWarn, pterm.FgYellow, format, a...)
}

func Error(a ...interface{}) {
	printLine(LevelError, pterm.FgLightRed, a...)
}

func Errorf(format string, a ...interface{}) {
	printFormat(LevelError, pterm.FgLightRed, format, a...)
}

func printLine(level Level, color pterm.Color, a ...interface{}) {
	if lvl > level {
		return
	}
	color.Println(a...)
}

func printFormat(level Level, color pterm.Color, format string, a ...interface{}) {
	if lvl > level {
		return
	}
	color.Printfln(format, a...)
}
