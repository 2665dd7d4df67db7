package blog

import (
	"context"

	"github.com/spetersoncode/blogsmith/internal/prompts"
	"github.com/spetersoncode/blogsmith/workflow"
)

// StageArt is the name of the art direction stage.
const StageArt = "art"

// MaxSectionImages is the number of leading subtitles illustrated.
const MaxSectionImages = 3

type artStage struct {
	generator TextGenerator
	images    ImageGenerator
	report    *reporter
}

func (st *artStage) Name() string { return StageArt }

// Run produces a title image and up to MaxSectionImages subtitle images.
// Section prompts and refs always have equal length; a failed image leaves
// a blank ref, a failed prompt drops the subtitle.
func (st *artStage) Run(ctx context.Context, s *workflow.State) (workflow.Patch, error) {
	if st.images == nil || st.generator == nil {
		st.report.degraded(ctx, StageArt, "art direction skipped: image or text generator not configured", nil)
		return artPatch([]string{}, "", "", []string{}, []string{}), nil
	}

	title := s.GetString(FieldDraftTitle)

	keywords := []string{}
	text, err := st.generateText(ctx, TaskKeywords, "image-keywords", map[string]string{"Title": title})
	if err != nil {
		return nil, err
	}
	if text != "" {
		keywords = ParseKeywords(text)
	}

	primaryPrompt, primaryRef, err := st.illustrate(ctx, title)
	if err != nil {
		return nil, err
	}

	subtitles := s.GetStrings(FieldDraftSubtitles)
	if len(subtitles) > MaxSectionImages {
		subtitles = subtitles[:MaxSectionImages]
	}
	sectionPrompts := make([]string, 0, len(subtitles))
	sectionRefs := make([]string, 0, len(subtitles))
	for _, subtitle := range subtitles {
		prompt, ref, err := st.illustrate(ctx, subtitle)
		if err != nil {
			return nil, err
		}
		if prompt == "" {
			continue
		}
		sectionPrompts = append(sectionPrompts, prompt)
		sectionRefs = append(sectionRefs, ref)
	}

	return artPatch(keywords, primaryRef, primaryPrompt, sectionRefs, sectionPrompts), nil
}

// illustrate writes an image prompt for subject and renders it. It returns
// ("", "") when the prompt could not be written and (prompt, "") when the
// image could not be rendered.
func (st *artStage) illustrate(ctx context.Context, subject string) (prompt, ref string, err error) {
	text, err := st.generateText(ctx, TaskImagePrompt, "image-prompt", map[string]string{"Subject": subject})
	if err != nil || text == "" {
		return "", "", err
	}
	if prompt = oneLine(text); prompt == "" {
		return "", "", nil
	}

	ref, err = st.images.GenerateImage(ctx, prompt)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return "", "", cerr
		}
		st.report.degraded(ctx, StageArt, "image generation failed", err)
		return prompt, "", nil
	}
	return prompt, ref, nil
}

func (st *artStage) generateText(ctx context.Context, task Task, key string, data map[string]string) (string, error) {
	user, err := prompts.Render(prompts.Blog, key, data)
	if err != nil {
		return "", err
	}
	text, err := st.generator.Generate(ctx, Prompt{Task: task, User: user})
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return "", cerr
		}
		st.report.degraded(ctx, StageArt, string(task)+" generation failed", err)
		return "", nil
	}
	return text, nil
}

func artPatch(keywords []string, primaryRef, primaryPrompt string, refs, sectionPrompts []string) workflow.Patch {
	p := KeyImageKeywords.Set(nil, keywords)
	KeyPrimaryImageRef.Set(p, primaryRef)
	KeyPrimaryImagePrompt.Set(p, primaryPrompt)
	KeySectionImageRefs.Set(p, refs)
	KeySectionPrompts.Set(p, sectionPrompts)
	return p
}
