package forecast

// Icon names understood by the presentation layer.
const (
	IconSunny        = "sunny"
	IconPartlyCloudy = "partly-cloudy"
	IconOvercast     = "overcast"
	IconFog          = "fog"
	IconDrizzle      = "drizzle"
	IconRain         = "rain"
	IconStorm        = "storm"
	IconSnow         = "snow"
)

// WMO weather interpretation codes.
var iconByCode = map[int]string{
	0:  IconSunny,
	1:  IconPartlyCloudy,
	2:  IconPartlyCloudy,
	3:  IconOvercast,
	45: IconFog,
	48: IconFog,
	51: IconDrizzle,
	53: IconDrizzle,
	55: IconDrizzle,
	56: IconDrizzle,
	57: IconDrizzle,
	61: IconRain,
	63: IconRain,
	65: IconRain,
	66: IconRain,
	67: IconRain,
	80: IconRain,
	81: IconRain,
	82: IconRain,
	71: IconSnow,
	73: IconSnow,
	75: IconSnow,
	77: IconSnow,
	85: IconSnow,
	86: IconSnow,
	95: IconStorm,
	96: IconStorm,
}

// IconName maps a WMO code to an icon; unknown codes render as partly cloudy.
func IconName(code int) string {
	if name, ok := iconByCode[code]; ok {
		return name
	}
	return IconPartlyCloudy
}
