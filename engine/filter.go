package engine

// Filter selects the providers that may serve the given request.
// A provider is excluded if any rule holds:
//  1. it is the weekend, the delivery mode is urgent, and the provider
//     does not support weekends
//  2. same-day delivery is requested without same-day support
//  3. express delivery is requested without express support
//  4. the USD amount is below the provider's minimum (when set)
//  5. the USD amount is above the provider's maximum (when set)
//
// An empty result is valid; callers must handle zero eligible providers.
func Filter(providers []*Provider, req *Request) []*Provider {
	amountUSD := req.AmountUSD()

	eligible := make([]*Provider, 0, len(providers))

	for _, p := range providers {
		// Weekend only restricts the urgent modes
		if req.IsWeekend && req.DeliveryMode != DeliveryStandard && !p.WeekendSupported {
			continue
		}

		if req.DeliveryMode == DeliverySameDay && !p.SupportsSameDay {
			continue
		}

		if req.DeliveryMode == DeliveryExpress && !p.SupportsExpress {
			continue
		}

		if p.MinAmountUSD != nil && amountUSD < *p.MinAmountUSD {
			continue
		}

		if p.MaxAmountUSD != nil && amountUSD > *p.MaxAmountUSD {
			continue
		}

		eligible = append(eligible, p)
	}

	return eligible
}
