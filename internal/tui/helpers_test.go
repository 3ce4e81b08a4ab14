package tui

import xansi "github.com/charmbracelet/x/ansi"

func visibleWidth(s string) int { return xansi.StringWidth(s) }
