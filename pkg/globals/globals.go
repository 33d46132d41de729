package globals

// Version is set at build time via -ldflags
var Version = "dev"

// X display index the session runs on (DISPLAY=:0)
var DisplayID = "0"

// xrandr output that gets rotated
var OutputName = "HDMI-1"

// Touch controller as listed by `xinput list`, e.g. "wch.cn CH57x   id=12"
// Different touch screens need a different pattern
var TouchDevicePattern = `wch\.cn CH57x\s+id=(\d+)`

// xinput property holding the 3x3 touch transform
const CalibrationProperty = "libinput Calibration Matrix"

// Empty marker file, present while the screen is inverted
var StatePath = "/tmp/screen_flipper_state"

// Config
var ConfigDir = "/etc/screen-flipper"
var ConfigPath = ConfigDir + "/config.json"

// Env var overriding ConfigPath
const ConfigEnv = "SCREEN_FLIPPER_CONFIG"

// Env var enabling debug logs
const DebugEnv = "SCREEN_FLIPPER_DEBUG"

// Logs
var LogsPath = "/tmp/screen_flipper_logs.json"

// Boot reset service
var ServiceName = "screen-flipper-reset.service"
var ServicePath = "/etc/systemd/system/" + ServiceName
