// Package ui is the Bubble Tea front end of lingofriends.
//
// Core abstractions:
//   - View: A screen with its own model, update, view (Elm-style)
//   - AppModel: Root model; owns data loading and navigation
//   - FriendsView: Search bar, result summary and the card grid
//   - ChatView: Destination pushed when a friend's Message action is chosen
//   - ViewStack: Stack-based navigation (push/pop views)
//   - OverlayStack: Modals drawn over the page (ConfirmModal)
//   - FocusManager: Tracks focus between the search bar and the grid
//   - KeybindRegistry/KeyHandler: Single keys and SPC leader sequences
//
// Filtering and state derivation live in the search and friendlist
// packages; this package only renders their output.
package ui
