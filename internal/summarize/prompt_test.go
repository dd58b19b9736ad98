package summarize

import (
	"strings"
	"testing"
)

func TestParseTone(t *testing.T) {
	cases := []struct {
		in      string
		want    Tone
		wantErr bool
	}{
		{"", TonePrecise, false},
		{"precise", TonePrecise, false},
		{"casual", ToneCasual, false},
		{"bullet", ToneBullet, false},
		{"academic", ToneAcademic, false},
		{"sarcastic", "", true},
		{"PRECISE", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTone(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTone(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTone(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTone(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestStyleInstruction_BulletBounds(t *testing.T) {
	one := Style{Tone: ToneBullet, MaxUnits: 1}.Instruction()
	if !strings.Contains(one, "at most 1 concise bullet point") {
		t.Errorf("expected 1-bullet bound in instruction, got %q", one)
	}

	ten := Style{Tone: ToneBullet, MaxUnits: 10}.Instruction()
	if !strings.Contains(ten, "at most 10 concise bullet point") {
		t.Errorf("expected 10-bullet bound in instruction, got %q", ten)
	}
}

func TestStyleInstruction_SentenceTones(t *testing.T) {
	got := Style{Tone: ToneAcademic, MaxUnits: 5}.Instruction()
	want := "Summarize the content in at most 5 sentences with a academic tone."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStagePrompt_SingleChunkOmitsPosition(t *testing.T) {
	chunk := TextChunk{Index: 0, Total: 1, Content: "only piece"}
	prompt := stagePrompt(chunk, Style{Tone: TonePrecise, MaxUnits: 3})

	if strings.Contains(prompt, "(Part") {
		t.Errorf("single-chunk prompt must not carry positional context: %q", prompt)
	}
	if !strings.Contains(prompt, "---\nonly piece") {
		t.Errorf("prompt missing chunk content: %q", prompt)
	}
}

func TestStagePrompt_MultiChunkPosition(t *testing.T) {
	chunk := TextChunk{Index: 1, Total: 3, Content: "middle piece"}
	prompt := stagePrompt(chunk, Style{Tone: TonePrecise, MaxUnits: 3})

	if !strings.Contains(prompt, "(Part 2 of 3)") {
		t.Errorf("expected positional context, got %q", prompt)
	}
}

func TestSynthesisPrompt_PreservesOrder(t *testing.T) {
	partials := []PartialSummary{
		{ChunkIndex: 0, Text: "first"},
		{ChunkIndex: 1, Text: "second"},
		{ChunkIndex: 2, Text: "third"},
	}
	prompt := synthesisPrompt(partials, Style{Tone: ToneCasual, MaxUnits: 4})

	if !strings.Contains(prompt, "- first\n- second\n- third") {
		t.Errorf("partials out of order in synthesis prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "ONE cohesive summary") {
		t.Errorf("expected merge directive, got %q", prompt)
	}
	if !strings.Contains(prompt, "Eliminate redundancy") {
		t.Errorf("expected redundancy directive, got %q", prompt)
	}
}

func TestSystemInstruction_ForbidsAddedFacts(t *testing.T) {
	if !strings.Contains(systemInstruction, "Avoid adding facts") {
		t.Errorf("system instruction must forbid invented content: %q", systemInstruction)
	}
}
