package gui

import "fyne.io/fyne/v2"

// iconSVG is a speech bubble with sound waves
const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<rect x="4" y="8" width="40" height="30" rx="6" fill="#2f6fdf"/>
<path d="M14 38 L12 50 L24 38 Z" fill="#2f6fdf"/>
<text x="24" y="29" font-family="sans-serif" font-size="16" font-weight="bold" fill="#ffffff" text-anchor="middle">Aa</text>
<path d="M50 16 Q56 23 50 30" stroke="#2f6fdf" stroke-width="3" fill="none"/>
<path d="M54 10 Q64 23 54 36" stroke="#2f6fdf" stroke-width="3" fill="none"/>
</svg>`

// GetAppIcon returns the application icon as a Fyne resource
func GetAppIcon() fyne.Resource {
	return fyne.NewStaticResource("voxlate.svg", []byte(iconSVG))
}
