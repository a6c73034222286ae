package wizard

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/networks"
	"github.com/txforge/txforge/internal/schema"
	"github.com/txforge/txforge/internal/store"
)

// projectNameRegex validates project names: 1-40 letters, digits, spaces, or hyphens.
var projectNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{0,39}$`)

// runProjectGroup prompts for the project name.
func (w *Wizard) runProjectGroup(ctx context.Context) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Description("Name for the exported project").
				Placeholder("my-transfer-form").
				Value(&w.projectName).
				Validate(validateProjectName),
		).Title("Project"),
	).RunWithContext(ctx)
}

func validateProjectName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errProjectNameRequired
	}
	if !projectNameRegex.MatchString(s) {
		return errProjectNameInvalid
	}
	return nil
}

// runNetworkGroup prompts for ecosystem and network. Changing the network
// from a previous answer cascades a reset of every downstream step.
func (w *Wizard) runNetworkGroup(ctx context.Context) error {
	st := w.store.GetState()

	eco := st.SelectedEcosystem
	if eco == "" {
		eco = schema.EcosystemEVM
	}

	ecoOpts := make([]huh.Option[schema.Ecosystem], 0)
	for _, e := range w.registry.Ecosystems() {
		ecoOpts = append(ecoOpts, huh.NewOption(string(e), e))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[schema.Ecosystem]().
				Title("Ecosystem").
				Description("Blockchain family the form targets").
				Options(ecoOpts...).
				Value(&eco),
		).Title("Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	networkID := st.SelectedNetworkID
	netOpts := make([]huh.Option[string], 0)
	for _, n := range networks.ForEcosystem(eco) {
		label := n.Name
		if n.Testnet {
			label += " (testnet)"
		}
		netOpts = append(netOpts, huh.NewOption(label, n.ID))
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Network").
				Description("Target network for the generated form").
				Options(netOpts...).
				Value(&networkID),
		).Title("Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if st.SelectedNetworkID != "" && st.SelectedNetworkID != networkID {
		w.store.ResetDownstream(store.ResetFromNetwork)
	}
	w.store.Update(func(s *store.WizardState) {
		s.SelectedNetworkID = networkID
		s.SelectedEcosystem = eco
		s.CurrentStepIndex = int(store.StepContract)
	})
	return nil
}

// runContractGroup prompts for the contract definition and address, loads
// the schema through the adapter, and writes it into the store.
func (w *Wizard) runContractGroup(ctx context.Context) error {
	adapter, err := w.adapter()
	if err != nil {
		return err
	}

	var source, address string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contract Definition").
				Description("Path to an ABI/IDL file, or builtin:<name> (e.g. builtin:erc20)").
				Placeholder("./abi.json").
				Value(&source).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errSourceRequired
					}
					return nil
				}),
			huh.NewInput().
				Title("Contract Address").
				Description("Deployed contract address on the selected network").
				Value(&address).
				Validate(func(s string) error {
					if !adapter.ValidateAddress(strings.TrimSpace(s)) {
						return errAddressInvalid
					}
					return nil
				}),
		).Title("Contract"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	src, err := resolveSource(strings.TrimSpace(source))
	if err != nil {
		return err
	}

	loader := NewContractLoader(adapter)
	loaded, stale, err := loader.Load(ctx, src)
	if err != nil {
		if errdefs.IsNetworkServiceError(err) {
			return fmt.Errorf("%w\n%s", err, errdefs.NetworkRemediation)
		}
		return err
	}
	if stale {
		// A newer load superseded this one; nothing to write.
		return nil
	}

	// A fresh schema invalidates any previously selected function and form.
	if w.store.GetState().ContractSchema != nil {
		w.store.ResetDownstream(store.ResetFromContract)
	}
	w.store.Update(func(s *store.WizardState) {
		s.ContractSchema = loaded
		s.ContractAddress = strings.TrimSpace(address)
		s.CurrentStepIndex = int(store.StepFunction)
	})
	w.log.Debug().Int("functions", len(loaded.Functions)).Msg("contract schema loaded")
	return nil
}

// resolveSource interprets the contract definition answer: a builtin
// reference or a file path.
func resolveSource(answer string) (adapters.ContractSource, error) {
	if name, ok := strings.CutPrefix(answer, "builtin:"); ok {
		return adapters.ContractSource{Builtin: name}, nil
	}
	// #nosec G304
	raw, err := os.ReadFile(answer)
	if err != nil {
		return adapters.ContractSource{}, fmt.Errorf("failed to read contract definition: %w", err)
	}
	return adapters.ContractSource{Raw: raw}, nil
}

// runFunctionGroup prompts for the target function.
func (w *Wizard) runFunctionGroup(ctx context.Context) error {
	st := w.store.GetState()
	if st.ContractSchema == nil {
		return errdefs.ConfigurationInvalid("no contract schema loaded")
	}

	opts := make([]huh.Option[string], 0, len(st.ContractSchema.Functions))
	for _, fn := range st.ContractSchema.Functions {
		label := fmt.Sprintf("%s (%d inputs, %s)", fn.Name, len(fn.Inputs), fn.StateMutability)
		opts = append(opts, huh.NewOption(label, fn.ID))
	}

	var functionID string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Function").
				Description("Contract function the form will call").
				Options(opts...).
				Value(&functionID),
		).Title("Function"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if err := w.store.SelectFunction(functionID); err != nil {
		return err
	}
	w.store.Update(func(s *store.WizardState) {
		s.CurrentStepIndex = int(store.StepFields)
	})
	return nil
}

// runFieldsGroup derives default fields from the selected function, lets the
// user customize a subset, and writes the form config into the store.
func (w *Wizard) runFieldsGroup(ctx context.Context) error {
	st := w.store.GetState()
	fn := st.ContractSchema.Function(st.SelectedFunction)
	if fn == nil {
		return errdefs.ConfigurationInvalid("selected function %q vanished from schema", st.SelectedFunction)
	}

	defaults := schema.DefaultFields(st.SelectedEcosystem, fn)

	title := fmt.Sprintf("%s Form", titleCase(fn.Name))
	var toCustomize []string
	fieldOpts := make([]huh.Option[string], 0, len(defaults))
	for _, f := range defaults {
		fieldOpts = append(fieldOpts, huh.NewOption(fmt.Sprintf("%s (%s)", f.Label, f.ParamType), f.Name))
	}

	validation := schema.ValidateOnBlur
	layout := "single-column"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Form Title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTitleRequired
					}
					return nil
				}),
			huh.NewMultiSelect[string]().
				Title("Customize Fields").
				Description("Pick fields to edit; unselected fields keep their defaults").
				Options(fieldOpts...).
				Value(&toCustomize),
			huh.NewSelect[schema.ValidationMode]().
				Title("Validation").
				Options(
					huh.NewOption("Validate on blur", schema.ValidateOnBlur),
					huh.NewOption("Validate on change", schema.ValidateOnChange),
					huh.NewOption("Validate on submit", schema.ValidateOnSubmit),
				).
				Value(&validation),
			huh.NewSelect[string]().
				Title("Layout").
				Options(
					huh.NewOption("Single column", "single-column"),
					huh.NewOption("Two columns", "two-column"),
				).
				Value(&layout),
		).Title("Fields"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	custom := make([]schema.FormField, 0, len(toCustomize))
	for _, name := range toCustomize {
		edited, err := w.runFieldEditor(ctx, defaults, name)
		if err != nil {
			return err
		}
		custom = append(custom, edited)
	}

	fields := schema.MergeFields(defaults, custom)

	w.store.Update(func(s *store.WizardState) {
		s.FormConfig = &schema.FormConfig{
			FunctionID:      s.SelectedFunction,
			ContractAddress: s.ContractAddress,
			Title:           strings.TrimSpace(title),
			Fields:          fields,
			Layout:          layout,
			Validation:      validation,
		}
		s.CurrentStepIndex = int(store.StepExecution)
	})
	return nil
}

// runFieldEditor edits one field's presentation.
func (w *Wizard) runFieldEditor(ctx context.Context, defaults []schema.FormField, name string) (schema.FormField, error) {
	var base schema.FormField
	for _, f := range defaults {
		if f.Name == name {
			base = f
			break
		}
	}

	label := base.Label
	placeholder := base.Placeholder
	help := base.HelpText
	required := base.Required

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Label").Value(&label),
			huh.NewInput().Title("Placeholder").Value(&placeholder),
			huh.NewInput().Title("Help Text").Value(&help),
			huh.NewConfirm().Title("Required").Value(&required),
		).Title(fmt.Sprintf("Field: %s", name)),
	).RunWithContext(ctx)
	if err != nil {
		return schema.FormField{}, err
	}

	return schema.FormField{
		Name:        name,
		Label:       label,
		Placeholder: placeholder,
		HelpText:    help,
		Required:    required,
	}, nil
}

// runExecutionGroup prompts for the execution method and UI kit, then marks
// the execution step valid.
func (w *Wizard) runExecutionGroup(ctx context.Context) error {
	adapter, err := w.adapter()
	if err != nil {
		return err
	}

	method := schema.ExecWallet
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[schema.ExecutionMethod]().
				Title("Execution").
				Description("How the exported form submits transactions").
				Options(
					huh.NewOption("Wallet signing", schema.ExecWallet),
					huh.NewOption("Relayer", schema.ExecRelayer),
				).
				Value(&method),
		).Title("Execution"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	var relayerURL string
	if method == schema.ExecRelayer {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Relayer URL").
					Placeholder("https://relayer.example.org").
					Value(&relayerURL).
					Validate(validateRelayerURL),
			).Title("Execution"),
		).RunWithContext(ctx)
		if err != nil {
			return err
		}
	}

	uiKit := "custom"
	if adapter.Supports(adapters.CapUIKits) {
		kits := adapter.UIKits()
		if len(kits) > 0 {
			uiKit = kits[0].ID
			kitOpts := make([]huh.Option[string], 0, len(kits))
			for _, k := range kits {
				kitOpts = append(kitOpts, huh.NewOption(fmt.Sprintf("%s - %s", k.Name, k.Description), k.ID))
			}
			err = huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Wallet UI Kit").
						Options(kitOpts...).
						Value(&uiKit),
				).Title("Execution"),
			).RunWithContext(ctx)
			if err != nil {
				return err
			}
		}
	}

	w.store.Update(func(s *store.WizardState) {
		if s.FormConfig == nil {
			return
		}
		cfg := *s.FormConfig
		cfg.Execution = schema.ExecutionConfig{Method: method, RelayerURL: relayerURL}
		cfg.UIKit = schema.UIKitConfig{ID: uiKit}
		s.FormConfig = &cfg
		s.ExecutionStepValid = true
	})
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func validateRelayerURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errRelayerURLInvalid
	}
	return nil
}

// adapter resolves the adapter for the currently selected ecosystem.
func (w *Wizard) adapter() (adapters.Adapter, error) {
	st := w.store.GetState()
	if !st.SelectedEcosystem.Valid() {
		return nil, errdefs.ConfigurationInvalid("no ecosystem selected")
	}
	return w.registry.Get(st.SelectedEcosystem)
}
