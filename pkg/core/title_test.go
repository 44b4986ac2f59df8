package core

import "testing"

func TestCompositeTitle(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		wantFilename string
		hasFilename  bool
		wantID       string
		hasID        bool
		wantTitle    string
	}{
		{
			name:         "all fields",
			title:        "x#file=/a/b.mgf#id=index=7#title=orig",
			wantFilename: "/a/b.mgf",
			hasFilename:  true,
			wantID:       "index=7",
			hasID:        true,
			wantTitle:    "orig",
		},
		{
			name:      "no markers",
			title:     "PRD000001;PRIDE_Exp_Complete_Ac_1644.xml;spectrum=5071",
			wantTitle: "PRD000001;PRIDE_Exp_Complete_Ac_1644.xml;spectrum=5071",
		},
		{
			name:         "file only",
			title:        "#file=run1.mgf",
			wantFilename: "run1.mgf",
			hasFilename:  true,
			wantTitle:    "#file=run1.mgf",
		},
		{
			name:         "file and id",
			title:        "#file=run1.mgf#id=scan=12",
			wantFilename: "run1.mgf",
			hasFilename:  true,
			wantID:       "scan=12",
			hasID:        true,
			wantTitle:    "#file=run1.mgf#id=scan=12",
		},
		{
			name:      "title only",
			title:     "#title=a title with = signs",
			wantTitle: "a title with = signs",
		},
		{
			name:         "id before file",
			title:        "#id=3#file=run1.mgf",
			wantFilename: "",
			hasFilename:  true,
			wantID:       "3#file=run1.mgf",
			hasID:        true,
			wantTitle:    "#id=3#file=run1.mgf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename, ok := TitleFilename(tt.title)
			if ok != tt.hasFilename || filename != tt.wantFilename {
				t.Errorf("TitleFilename() = %q, %v, want %q, %v", filename, ok, tt.wantFilename, tt.hasFilename)
			}
			id, ok := TitleID(tt.title)
			if ok != tt.hasID || id != tt.wantID {
				t.Errorf("TitleID() = %q, %v, want %q, %v", id, ok, tt.wantID, tt.hasID)
			}
			if got := TitleOriginal(tt.title); got != tt.wantTitle {
				t.Errorf("TitleOriginal() = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestEncodeTitle(t *testing.T) {
	title := EncodeTitle("/a/b.mgf", "index=7", "orig")
	if title != "#file=/a/b.mgf#id=index=7#title=orig" {
		t.Fatalf("Unexpected title %s", title)
	}

	filename, _ := TitleFilename(title)
	id, _ := TitleID(title)
	if filename != "/a/b.mgf" || id != "index=7" || TitleOriginal(title) != "orig" {
		t.Errorf("Title did not decode to its parts: %q %q %q", filename, id, TitleOriginal(title))
	}

	if got := EncodeTitle("", "", "plain"); got != "#title=plain" {
		t.Errorf("Expected #title=plain, got %s", got)
	}
}
