package markdown

import (
	"strings"
	"testing"
)

func TestSplitSections_TitleFromFirstH1(t *testing.T) {
	post := SplitSections("# My Title\n\nSome text.", SubtitleFull)
	if post.Title != "My Title" {
		t.Errorf("expected title %q, got %q", "My Title", post.Title)
	}
	if post.Body != "Some text." {
		t.Errorf("expected body %q, got %q", "Some text.", post.Body)
	}
}

func TestSplitSections_MissingTitleFallsBack(t *testing.T) {
	post := SplitSections("just text, no headings", SubtitleFull)
	if post.Title != DefaultTitle {
		t.Errorf("expected default title %q, got %q", DefaultTitle, post.Title)
	}
	if post.Body != "just text, no headings" {
		t.Errorf("expected body passthrough, got %q", post.Body)
	}
}

func TestSplitSections_H1AfterSectionIsNotTitle(t *testing.T) {
	post := SplitSections("## Intro\n# Late Heading\ntext", SubtitleFull)
	if post.Title != DefaultTitle {
		t.Errorf("expected default title, got %q", post.Title)
	}
	if !strings.Contains(post.Body, "# Late Heading") {
		t.Errorf("expected late H1 kept in body, got %q", post.Body)
	}
}

func TestSplitSections_SecondH1StaysInBody(t *testing.T) {
	post := SplitSections("# First\n# Second\ntext", SubtitleFull)
	if post.Title != "First" {
		t.Errorf("expected title %q, got %q", "First", post.Title)
	}
	if !strings.Contains(post.Body, "# Second") {
		t.Errorf("expected second H1 in body, got %q", post.Body)
	}
}

func TestSplitSections_ExcludedAndHookSections(t *testing.T) {
	input := "## Notes\nsecret\n## Hook\nTeaser.\n## Body\nReal text."
	post := SplitSections(input, SubtitleFull)

	if post.Title != DefaultTitle {
		t.Errorf("expected default title, got %q", post.Title)
	}
	if post.Subtitle != "Teaser." {
		t.Errorf("expected subtitle %q, got %q", "Teaser.", post.Subtitle)
	}
	if post.Body != "## Body\nReal text." {
		t.Errorf("expected body %q, got %q", "## Body\nReal text.", post.Body)
	}
	for _, field := range []string{post.Title, post.Subtitle, post.Body} {
		if strings.Contains(field, "secret") {
			t.Errorf("excluded section content leaked into %q", field)
		}
	}
}

func TestSplitSections_ExclusionIsCaseInsensitive(t *testing.T) {
	input := "## STATUS\ndraft\n## LinkedIn Assessment\nskip me\n## Story\nkeep me"
	post := SplitSections(input, SubtitleFull)
	if strings.Contains(post.Body, "draft") || strings.Contains(post.Body, "skip me") {
		t.Errorf("excluded content leaked into body: %q", post.Body)
	}
	if !strings.Contains(post.Body, "## Story") || !strings.Contains(post.Body, "keep me") {
		t.Errorf("expected non-excluded section kept, got %q", post.Body)
	}
}

func TestSplitSections_HookHeadingNeverEmitted(t *testing.T) {
	post := SplitSections("# T\n## Hook\nA teaser line.\n## Rest\nbody", SubtitleFull)
	if strings.Contains(post.Body, "Hook") {
		t.Errorf("hook heading leaked into body: %q", post.Body)
	}
	if post.Subtitle != "A teaser line." {
		t.Errorf("expected subtitle %q, got %q", "A teaser line.", post.Subtitle)
	}
}

func TestSplitSections_SubtitleModeFull(t *testing.T) {
	input := "# T\n## Hook\nFirst para.\n\nSecond para.\n## Body\nText."
	post := SplitSections(input, SubtitleFull)
	if post.Subtitle != "First para.\n\nSecond para." {
		t.Errorf("expected whole hook as subtitle, got %q", post.Subtitle)
	}
	if strings.Contains(post.Body, "Second para.") {
		t.Errorf("hook content leaked into body: %q", post.Body)
	}
}

func TestSplitSections_SubtitleModeFirstParagraph(t *testing.T) {
	input := "# T\n## Hook\nFirst para.\n\nSecond para.\n## Body\nText."
	post := SplitSections(input, SubtitleFirstParagraph)
	if post.Subtitle != "First para." {
		t.Errorf("expected first paragraph as subtitle, got %q", post.Subtitle)
	}
	if post.Body != "Second para.\n## Body\nText." {
		t.Errorf("expected hook remainder folded into body, got %q", post.Body)
	}
}

func TestSplitSections_BodyBlankLinesTrimmed(t *testing.T) {
	post := SplitSections("# T\n\n\nmiddle\n\n\n", SubtitleFull)
	if post.Body != "middle" {
		t.Errorf("expected trimmed body %q, got %q", "middle", post.Body)
	}
}

func TestSplitSections_EmptyInput(t *testing.T) {
	post := SplitSections("", SubtitleFull)
	if post.Title != DefaultTitle || post.Subtitle != "" || post.Body != "" {
		t.Errorf("expected empty result with default title, got %+v", post)
	}
}
