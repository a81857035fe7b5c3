// Package i18n translates UI labels. English strings are the keys.
package i18n

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"
)

// EnvLang forces the UI language when set.
const EnvLang = "POMODORO_LANG"

var supported = []string{"pt", "es", "ru"}

var lang atomic.Value

var translations = map[string]map[string]string{
	"Focus": {
		"pt": "Foco",
		"es": "Enfoque",
		"ru": "Фокус",
	},
	"Short Break": {
		"pt": "Pausa Curta",
		"es": "Descanso Corto",
		"ru": "Короткий перерыв",
	},
	"Long Break": {
		"pt": "Pausa Longa",
		"es": "Descanso Largo",
		"ru": "Длинный перерыв",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
		"ru": "Пауза",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Reset Sessions": {
		"pt": "Resetar Sessões",
		"es": "Reiniciar Sesiones",
		"ru": "Сбросить сессии",
	},
	"Skip Break": {
		"pt": "Pular Pausa",
		"es": "Saltar Descanso",
		"ru": "Пропустить перерыв",
	},
	"Test Alarm": {
		"pt": "Testar Alarme",
		"es": "Probar Alarma",
		"ru": "Проверить сигнал",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Ajustes",
		"ru": "Настройки",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
	"Focus (min)": {
		"pt": "Foco (min)",
		"es": "Enfoque (min)",
		"ru": "Фокус (мин)",
	},
	"Short Break (min)": {
		"pt": "Pausa Curta (min)",
		"es": "Descanso Corto (min)",
		"ru": "Короткий перерыв (мин)",
	},
	"Long Break (min)": {
		"pt": "Pausa Longa (min)",
		"es": "Descanso Largo (min)",
		"ru": "Длинный перерыв (мин)",
	},
	"Enable Long Breaks": {
		"pt": "Ativar Pausas Longas",
		"es": "Activar Descansos Largos",
		"ru": "Включить длинные перерывы",
	},
	"Sessions until Long Break": {
		"pt": "Sessões até a Pausa Longa",
		"es": "Sesiones hasta Descanso Largo",
		"ru": "Сессий до длинного перерыва",
	},
	"Auto-start Breaks": {
		"pt": "Iniciar Pausas Automaticamente",
		"es": "Iniciar Descansos Automáticamente",
		"ru": "Автозапуск перерывов",
	},
	"Auto-start Focus": {
		"pt": "Iniciar Foco Automaticamente",
		"es": "Iniciar Enfoque Automáticamente",
		"ru": "Автозапуск фокуса",
	},
	"Alarm Volume": {
		"pt": "Volume do Alarme",
		"es": "Volumen de Alarma",
		"ru": "Громкость сигнала",
	},
	"Color Theme": {
		"pt": "Tema de Cor",
		"es": "Tema de Color",
		"ru": "Цветовая тема",
	},
	"Timer Display": {
		"pt": "Exibição do Timer",
		"es": "Visualización del Temporizador",
		"ru": "Вид таймера",
	},
	"Dark Mode": {
		"pt": "Modo Escuro",
		"es": "Modo Oscuro",
		"ru": "Тёмная тема",
	},
	"Completed": {
		"pt": "Concluídas",
		"es": "Completadas",
		"ru": "Завершено",
	},
}

func init() {
	lang.Store("en")
}

// Detect selects the language from EnvLang or the system locale and
// returns it. A nil logger uses slog.Default.
func Detect(logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	if forced := strings.TrimSpace(os.Getenv(EnvLang)); forced != "" {
		logger.Debug("language forced by environment", "env", EnvLang, "lang", forced)
		return SetLang(forced)
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		logger.Debug("could not detect user locale, defaulting to english", "error", err)
		return SetLang("en")
	}

	logger.Debug("detected user locale", "locale", userLocales[0])
	return SetLang(userLocales[0])
}

// SetLang selects a language by locale prefix ("pt_BR" selects "pt").
// Unsupported locales select English. It returns the selected language.
func SetLang(localeName string) string {
	selected := "en"
	normalized := strings.ToLower(strings.TrimSpace(localeName))
	for _, candidate := range supported {
		if strings.HasPrefix(normalized, candidate) {
			selected = candidate
			break
		}
	}
	lang.Store(selected)
	return selected
}

// Lang returns the active language.
func Lang() string {
	return lang.Load().(string)
}

// T translates key, falling back to the key itself.
func T(key string) string {
	if translated, ok := translations[key][Lang()]; ok {
		return translated
	}
	return key
}
