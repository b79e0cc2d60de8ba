// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the NeuralPilot chat view.

All colors are Lip Gloss AdaptiveColor values, so one palette serves light
and dark terminals. NewTheme pins the background when the configured theme
is "dark" or "light" and detects it for "auto".

# Bubbles

	UserBubble      - right-aligned, filled blue
	BotBubble       - left-aligned, outlined
	FailedBubble    - bot bubble carrying the fallback reply
	FadedBubble     - fade-out phase of a reply transition
	HighlightBubble - highlight phase of a reply transition

# Transitions

TransitionConfig.Next walks a resolved reply through
steady -> fade-out -> highlight -> steady. Phases with zero duration are
skipped.

# Usage Example

	theme := styles.NewTheme("auto")
	theme.SetSize(width, height)
	bubble := theme.BotBubble.MaxWidth(theme.BubbleWidth()).Render(text)
*/
package styles
