package file

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/timerestrict/internal/platform/logging"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/domain"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

// SettingsFileName is the settings file inside the configuration directory.
const SettingsFileName = "timerestrict_settings.properties"

const (
	messageKey   = "kick.message"
	timesSuffix  = ".times"
	offValue     = "off"
	headerNotice = "# TimeRestrict Mod Settings. Use format HHmm-HHmm (e.g. 2300-0700), or 'off'.\n"
)

// SettingsFile stores settings in a Java-style .properties file.
type SettingsFile struct {
	path   string
	logger *zap.Logger
}

// NewSettingsFile returns a store for SettingsFileName under dir.
func NewSettingsFile(dir string, logger *zap.Logger) *SettingsFile {
	return &SettingsFile{
		path:   filepath.Join(dir, SettingsFileName),
		logger: logging.OrNop(logger),
	}
}

// Path returns the settings file location.
func (f *SettingsFile) Path() string {
	return f.path
}

// LoadSettings reads the settings file. Missing files and files without any
// key yield the default weekend schedule. Malformed day entries are logged
// and left unrestricted.
//
// A file that does not parse as a whole is read again line by line so the
// entries that do parse survive. The error is still returned in that case;
// callers must not write the recovered settings back over the file.
func (f *SettingsFile) LoadSettings() (storage.Settings, error) {
	props, err := f.loader().LoadFile(f.path)
	if err == nil {
		return f.decode(props), nil
	}
	parseErr := fmt.Errorf("load %s: %w", SettingsFileName, err)

	data, readErr := os.ReadFile(f.path)
	if readErr != nil {
		return storage.Settings{
			Schedule: domain.DefaultSchedule(),
			Template: domain.DefaultTemplate,
		}, parseErr
	}
	f.logger.Warn("settings file damaged, keeping readable entries",
		zap.String("path", f.path),
		zap.Error(err),
	)
	return f.decode(f.salvage(data)), parseErr
}

func (f *SettingsFile) loader() *properties.Loader {
	return &properties.Loader{
		Encoding:         properties.ISO_8859_1,
		DisableExpansion: true,
		IgnoreMissing:    true,
	}
}

// salvage parses each logical line on its own and drops the ones that fail.
func (f *SettingsFile) salvage(data []byte) *properties.Properties {
	merged := properties.NewProperties()
	merged.DisableExpansion = true
	loader := f.loader()
	for n, line := range logicalLines(data) {
		props, err := loader.LoadBytes(line)
		if err != nil {
			f.logger.Warn("dropping unreadable settings line",
				zap.String("path", f.path),
				zap.Int("line", n+1),
				zap.Error(err),
			)
			continue
		}
		merged.Merge(props)
	}
	return merged
}

// logicalLines splits data on newlines, joining lines that end in an odd
// number of backslashes with the line that follows.
func logicalLines(data []byte) [][]byte {
	var (
		lines   [][]byte
		current []byte
	)
	for _, raw := range bytes.Split(data, []byte("\n")) {
		current = append(current, raw...)
		if continues(bytes.TrimRight(raw, "\r")) {
			current = append(current, '\n')
			continue
		}
		lines = append(lines, current)
		current = nil
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func continues(line []byte) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func (f *SettingsFile) decode(props *properties.Properties) storage.Settings {
	if props.Len() == 0 {
		f.logger.Info("settings file empty, using default schedule", zap.String("path", f.path))
		return storage.Settings{
			Schedule: domain.DefaultSchedule(),
			Template: domain.DefaultTemplate,
		}
	}

	settings := storage.Settings{Template: domain.DefaultTemplate}
	if message, ok := props.Get(messageKey); ok {
		settings.Template = message
	}
	for _, day := range domain.Week {
		value, ok := props.Get(day.Key() + timesSuffix)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if strings.EqualFold(value, offValue) {
			continue
		}
		window, err := domain.ParseWindow(value)
		if err != nil {
			f.logger.Warn("ignoring malformed schedule entry",
				zap.String("path", f.path),
				zap.String("day", day.String()),
				zap.String("value", value),
				zap.Error(err),
			)
			continue
		}
		settings.Schedule.Set(day, window)
	}
	return settings
}

// SaveSettings writes the message template and all seven day entries.
func (f *SettingsFile) SaveSettings(settings storage.Settings) error {
	data, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(f.path, data); err != nil {
		return fmt.Errorf("save %s: %w", SettingsFileName, err)
	}
	return nil
}

func encodeSettings(settings storage.Settings) ([]byte, error) {
	props := properties.NewProperties()
	props.DisableExpansion = true
	if _, _, err := props.Set(messageKey, settings.Template); err != nil {
		return nil, fmt.Errorf("encode %s: %w", messageKey, err)
	}
	for _, day := range domain.Week {
		value := offValue
		if window, ok := settings.Schedule.Window(day); ok {
			value = window.String()
		}
		key := day.Key() + timesSuffix
		if _, _, err := props.Set(key, value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(headerNotice)
	if _, err := props.Write(&buf, properties.ISO_8859_1); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

var _ storage.SettingsStore = (*SettingsFile)(nil)
