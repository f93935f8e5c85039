package screen

// Reduce returns the state that follows s after ev. It performs no I/O and
// never mutates the slices held by s or ev.
func Reduce(s State, ev Event) State {
	s = s.clone()

	switch e := ev.(type) {
	case Mounted:
		s.Language = e.Language
		s.Category = e.Category
	case LanguageSelected:
		s.Language = e.Code
	case CategorySelected:
		s.Category = e.Category
	case RefreshRequested:
		s.IsRefreshing = true
	case FetchStarted:
		if e.Generation <= s.Generation {
			return s
		}
		s.Generation = e.Generation
		s.IsLoading = true
		s.IsRefreshing = e.Refreshing
	case FetchSucceeded:
		if e.Generation != s.Generation {
			return s
		}
		s.Articles = copyArticles(e.Articles)
		s.IsLoading = false
		s.IsRefreshing = false
		s.LastError = ""
	case FetchFailed:
		if e.Generation != s.Generation {
			return s
		}
		s.IsLoading = false
		s.IsRefreshing = false
		if e.Err != nil {
			s.LastError = e.Err.Error()
		}
	case ThemeLoaded:
		s.IsDarkMode = e.Dark
	case ThemeToggled:
		s.IsDarkMode = !s.IsDarkMode
	}
	return s
}
